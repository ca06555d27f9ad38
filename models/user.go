package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a seeded user document.
// Optional fields are pointers so that an absent field is never stored as null or ""
type User struct {
	ID        bson.ObjectID `bson:"_id" json:"-"`
	Email     string        `bson:"email" json:"email"`
	FirstName *string       `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  *string       `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Status    string        `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time    `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// UserProjection is the reporting view of a user: identifiers and timestamps are left out
type UserProjection struct {
	Email     string  `bson:"email" json:"email"`
	FirstName *string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  *string `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Status    string  `bson:"status" json:"status"`
}

// ProjectionFields lists the document keys kept by UserProjection, in report order
var ProjectionFields = []string{"email", "first_name", "last_name", "status"}

// Project returns the reporting view of u
func (u User) Project() UserProjection {
	return UserProjection{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Status:    u.Status,
	}
}
