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

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.ProjectSubmission) error
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.ProjectSubmission, error)
	FindByUserAndBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) ([]*entity.ProjectSubmission, error)
	FindBySlot(ctx context.Context, userID, bootcampID bson.ObjectID, projectNumber int) (*entity.ProjectSubmission, error)
	Update(ctx context.Context, submission *entity.ProjectSubmission) error
}

type submissionRepository struct {
	db  *mongo.Database
	log *zap.Logger
}

func NewSubmissionRepository(db *mongo.Database, log *zap.Logger) SubmissionRepository {
	return &submissionRepository{
		db:  db,
		log: log,
	}
}

func (sr *submissionRepository) Create(ctx context.Context, submission *entity.ProjectSubmission) error {
	now := time.Now()
	submission.CreatedAt = now
	submission.UpdatedAt = now
	if submission.ID.IsZero() {
		submission.ID = bson.NewObjectID()
	}

	_, err := sr.db.Collection(submissionCollection).InsertOne(ctx, submission)
	if err != nil {
		// The unique slot index rejects a concurrent insert for the same
		// (user, bootcamp, projectNumber)
		if IsDuplicateKey(err) {
			return err
		}
		sr.log.Error("Failed to create submission",
			zap.Error(err),
			zap.String("user_id", submission.UserID.Hex()),
			zap.String("bootcamp_id", submission.BootcampID.Hex()),
			zap.Int("project_number", submission.ProjectNumber),
		)
		return fmt.Errorf("create submission: %w", err)
	}

	return nil
}

func (sr *submissionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.ProjectSubmission, error) {
	var submission entity.ProjectSubmission
	err := sr.db.Collection(submissionCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&submission)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find submission by ID",
			zap.Error(err),
			zap.String("submission_id", id.Hex()),
		)
		return nil, fmt.Errorf("find submission by ID %s: %w", id.Hex(), err)
	}

	return &submission, nil
}

// FindByUserAndBootcamp returns the pair's submissions ordered by
// project number ascending
func (sr *submissionRepository) FindByUserAndBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) ([]*entity.ProjectSubmission, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "project_number", Value: 1}})

	cursor, err := sr.db.Collection(submissionCollection).Find(ctx, bson.M{
		"user":     userID,
		"bootcamp": bootcampID,
	}, findOptions)
	if err != nil {
		sr.log.Error("Failed to list submissions",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("bootcamp_id", bootcampID.Hex()),
		)
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []*entity.ProjectSubmission
	for cursor.Next(ctx) {
		var submission entity.ProjectSubmission
		if err := cursor.Decode(&submission); err != nil {
			sr.log.Error("Failed to decode submission document", zap.Error(err))
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return submissions, nil
}

func (sr *submissionRepository) FindBySlot(ctx context.Context, userID, bootcampID bson.ObjectID, projectNumber int) (*entity.ProjectSubmission, error) {
	var submission entity.ProjectSubmission
	err := sr.db.Collection(submissionCollection).FindOne(ctx, bson.M{
		"user":           userID,
		"bootcamp":       bootcampID,
		"project_number": projectNumber,
	}).Decode(&submission)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find submission slot",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("bootcamp_id", bootcampID.Hex()),
			zap.Int("project_number", projectNumber),
		)
		return nil, fmt.Errorf("find submission slot: %w", err)
	}

	return &submission, nil
}

func (sr *submissionRepository) Update(ctx context.Context, submission *entity.ProjectSubmission) error {
	submission.UpdatedAt = time.Now()

	result, err := sr.db.Collection(submissionCollection).ReplaceOne(ctx, bson.M{"_id": submission.ID}, submission)
	if err != nil {
		sr.log.Error("Failed to update submission",
			zap.Error(err),
			zap.String("submission_id", submission.ID.Hex()),
		)
		return fmt.Errorf("update submission %s: %w", submission.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("submission %s not found", submission.ID.Hex())
	}

	return nil
}
