package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const (
	userCollection         = "users"
	bootcampCollection     = "bootcamps"
	registrationCollection = "registrations"
	submissionCollection   = "project_submissions"
)

type Repository struct {
	User         UserRepository
	Bootcamp     BootcampRepository
	Registration RegistrationRepository
	Submission   SubmissionRepository
}

func NewRepository(db *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Bootcamp:     NewBootcampRepository(db, log),
		Registration: NewRegistrationRepository(db, log),
		Submission:   NewSubmissionRepository(db, log),
	}
}

// EnsureIndexes creates the unique indexes the business rules lean on:
// one account per email, one registration per (user, bootcamp), one
// submission per (user, bootcamp, projectNumber). Concurrent duplicate
// inserts fail here rather than in application code.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		userCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		registrationCollection: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "bootcamp", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		submissionCollection: {
			{
				Keys: bson.D{
					{Key: "user", Value: 1},
					{Key: "bootcamp", Value: 1},
					{Key: "project_number", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}

	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
