// Package fixture holds the fixed sample data loaded before migration runs.
//
// The records are deliberately irregular: email casing differs between
// records, first_name and last_name are each missing on a different record,
// and only one record carries updated_at. Migration code is expected to cope
// with all of it.
package fixture

import (
	"time"

	"github.com/samandartukhtayev/migration-fixtures/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Size is the number of records in the sample data set
const Size = 5

// Users builds the sample user records in their canonical order.
// Every call generates fresh ids; all other fields are fixed.
func Users() []models.User {
	bobCreated := at("2024-01-03T09:15:00Z")
	bobUpdated := bobCreated

	return []models.User{
		{
			ID:        bson.NewObjectID(),
			Email:     "JOHN.DOE@EXAMPLE.COM",
			FirstName: str("John"),
			LastName:  str("Doe"),
			Status:    "active",
			CreatedAt: at("2024-01-01T10:00:00Z"),
		},
		{
			ID:        bson.NewObjectID(),
			Email:     "jane.smith@EXAMPLE.COM",
			FirstName: str("Jane"),
			LastName:  str("Smith"),
			Status:    "inactive",
			CreatedAt: at("2024-01-02T14:30:00Z"),
		},
		{
			ID:        bson.NewObjectID(),
			Email:     "bob.johnson@example.com",
			FirstName: str("Bob"),
			LastName:  str("Johnson"),
			Status:    "active",
			CreatedAt: bobCreated,
			UpdatedAt: &bobUpdated,
		},
		{
			// no first_name
			ID:        bson.NewObjectID(),
			Email:     "ALICE.WILLIAMS@EXAMPLE.COM",
			LastName:  str("Williams"),
			Status:    "pending",
			CreatedAt: at("2024-01-04T16:45:00Z"),
		},
		{
			// no last_name
			ID:        bson.NewObjectID(),
			Email:     "charlie.brown@example.com",
			FirstName: str("Charlie"),
			Status:    "active",
			CreatedAt: at("2024-01-05T11:20:00Z"),
		},
	}
}

func str(s string) *string {
	return &s
}

// at parses a fixed RFC 3339 literal; the literals above are known to be valid
func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
