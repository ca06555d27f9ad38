package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestProjection(t *testing.T) {
	want := bson.D{
		{Key: "_id", Value: 0},
		{Key: "email", Value: 1},
		{Key: "first_name", Value: 1},
		{Key: "last_name", Value: 1},
		{Key: "status", Value: 1},
	}
	assert.Equal(t, want, projection())
}
