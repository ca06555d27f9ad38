//go:build integration

package seeder

import (
	"bytes"
	"context"
	"testing"

	"github.com/samandartukhtayev/migration-fixtures/config"
	"github.com/samandartukhtayev/migration-fixtures/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap/zaptest"
)

func TestSeeder_Mongo(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := repository.ConnectMongo(ctx, config.MongoConfig{URL: uri})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	out := &bytes.Buffer{}
	s := New(repository.NewMongoUserStore(client, DefaultTarget), DefaultTarget, out, zaptest.NewLogger(t))

	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "✓ Inserted 5 sample users")
	lines := overviewLines(t, out.String())
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.NotContains(t, line, "_id")
		assert.NotContains(t, line, "created_at")
	}

	coll := client.Database(Database).Collection(Collection)

	var bob bson.M
	require.NoError(t, coll.FindOne(ctx, bson.D{{Key: "email", Value: "bob.johnson@example.com"}}).Decode(&bob))
	assert.Equal(t, bob["created_at"], bob["updated_at"])

	withUpdated, err := coll.CountDocuments(ctx, bson.D{{Key: "updated_at", Value: bson.D{{Key: "$exists", Value: true}}}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), withUpdated)

	out.Reset()
	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "✓ Inserted 10 sample users")
}
