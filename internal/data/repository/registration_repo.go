package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootcamp-platform/internal/data/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// RegistrationWithBootcamp joins a registration with its bootcamp for
// the "my registrations" listing
type RegistrationWithBootcamp struct {
	Registration *entity.Registration
	Bootcamp     *entity.Bootcamp
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entity.Registration) error
	FindByUserAndBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) (*entity.Registration, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]*RegistrationWithBootcamp, error)
}

type registrationRepository struct {
	db  *mongo.Database
	log *zap.Logger
}

func NewRegistrationRepository(db *mongo.Database, log *zap.Logger) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: log,
	}
}

func (rr *registrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	now := time.Now()
	registration.CreatedAt = now
	registration.UpdatedAt = now
	if registration.RegisteredAt.IsZero() {
		registration.RegisteredAt = now
	}
	if registration.ID.IsZero() {
		registration.ID = bson.NewObjectID()
	}

	_, err := rr.db.Collection(registrationCollection).InsertOne(ctx, registration)
	if err != nil {
		// The unique (user, bootcamp) index catches concurrent duplicates;
		// the caller maps this to a conflict
		if IsDuplicateKey(err) {
			return err
		}
		rr.log.Error("Failed to create registration",
			zap.Error(err),
			zap.String("user_id", registration.UserID.Hex()),
			zap.String("bootcamp_id", registration.BootcampID.Hex()),
		)
		return fmt.Errorf("create registration: %w", err)
	}

	return nil
}

func (rr *registrationRepository) FindByUserAndBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) (*entity.Registration, error) {
	var registration entity.Registration
	err := rr.db.Collection(registrationCollection).FindOne(ctx, bson.M{
		"user":     userID,
		"bootcamp": bootcampID,
	}).Decode(&registration)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		rr.log.Error("Failed to find registration",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("bootcamp_id", bootcampID.Hex()),
		)
		return nil, fmt.Errorf("find registration: %w", err)
	}

	return &registration, nil
}

// FindByUser lists a user's registrations newest first, each joined with
// its bootcamp
func (rr *registrationRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]*RegistrationWithBootcamp, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := rr.db.Collection(registrationCollection).Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		rr.log.Error("Failed to list registrations",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return nil, fmt.Errorf("list registrations for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var registrations []*entity.Registration
	bootcampIDs := make(map[bson.ObjectID]bool)
	for cursor.Next(ctx) {
		var registration entity.Registration
		if err := cursor.Decode(&registration); err != nil {
			rr.log.Error("Failed to decode registration document", zap.Error(err))
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		registrations = append(registrations, &registration)
		bootcampIDs[registration.BootcampID] = true
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}

	bootcamps, err := rr.findBootcamps(ctx, bootcampIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*RegistrationWithBootcamp, 0, len(registrations))
	for _, registration := range registrations {
		result = append(result, &RegistrationWithBootcamp{
			Registration: registration,
			Bootcamp:     bootcamps[registration.BootcampID],
		})
	}

	return result, nil
}

func (rr *registrationRepository) findBootcamps(ctx context.Context, ids map[bson.ObjectID]bool) (map[bson.ObjectID]*entity.Bootcamp, error) {
	bootcamps := make(map[bson.ObjectID]*entity.Bootcamp)
	if len(ids) == 0 {
		return bootcamps, nil
	}

	idList := make([]bson.ObjectID, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}

	cursor, err := rr.db.Collection(bootcampCollection).Find(ctx, bson.M{"_id": bson.M{"$in": idList}})
	if err != nil {
		rr.log.Error("Failed to load registration bootcamps", zap.Error(err))
		return nil, fmt.Errorf("load registration bootcamps: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var bootcamp entity.Bootcamp
		if err := cursor.Decode(&bootcamp); err != nil {
			return nil, fmt.Errorf("decode bootcamp: %w", err)
		}
		bootcamps[bootcamp.ID] = &bootcamp
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate bootcamps: %w", err)
	}

	return bootcamps, nil
}
