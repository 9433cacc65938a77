package employee

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var requiredFields = []string{"employee_id", "name", "department", "salary", "joining_date", "skills"}

var indexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetName("uniq_employee_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "department", Value: 1}, {Key: "joining_date", Value: -1}},
		Options: options.Index().SetName("idx_department_joining_date"),
	},
}

// JSONSchema mirrors the create payload rules on the server side.
func JSONSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": requiredFields,
		"properties": bson.M{
			"employee_id":  bson.M{"bsonType": "string"},
			"name":         bson.M{"bsonType": "string"},
			"department":   bson.M{"bsonType": "string"},
			"salary":       bson.M{"bsonType": bson.A{"int", "double", "long"}},
			"joining_date": bson.M{"bsonType": "date"},
			"skills":       bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		},
	}
}

// EnsureSchema creates the collection with its validator when missing, then the indexes.
// The validator needs collMod/createCollection privileges, so failing to install it is only logged.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db := s.Coll.Database()
	name := s.Coll.Name()

	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(existing) == 0 {
		opts := options.CreateCollection().
			SetValidator(bson.M{"$jsonSchema": JSONSchema()}).
			SetValidationLevel("moderate")
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			slog.Warn("employee collection validator not installed", "collection", name, "err", err)
		}
	}

	if _, err := s.Coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create employee indexes: %w", err)
	}
	return nil
}
