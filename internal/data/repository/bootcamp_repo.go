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

// BootcampWithCreator is the read-side join of a bootcamp with the admin
// who created it
type BootcampWithCreator struct {
	Bootcamp *entity.Bootcamp
	Creator  *entity.User
}

type BootcampRepository interface {
	Create(ctx context.Context, bootcamp *entity.Bootcamp) error
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Bootcamp, error)
	FindAllWithCreator(ctx context.Context, limit, offset int) ([]*BootcampWithCreator, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, bootcamp *entity.Bootcamp) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type bootcampRepository struct {
	db  *mongo.Database
	log *zap.Logger
}

func NewBootcampRepository(db *mongo.Database, log *zap.Logger) BootcampRepository {
	return &bootcampRepository{
		db:  db,
		log: log,
	}
}

func (br *bootcampRepository) Create(ctx context.Context, bootcamp *entity.Bootcamp) error {
	now := time.Now()
	bootcamp.CreatedAt = now
	bootcamp.UpdatedAt = now
	if bootcamp.ID.IsZero() {
		bootcamp.ID = bson.NewObjectID()
	}

	_, err := br.db.Collection(bootcampCollection).InsertOne(ctx, bootcamp)
	if err != nil {
		br.log.Error("Failed to create bootcamp",
			zap.Error(err),
			zap.String("title", bootcamp.Title),
		)
		return fmt.Errorf("create bootcamp %s: %w", bootcamp.Title, err)
	}

	return nil
}

func (br *bootcampRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Bootcamp, error) {
	var bootcamp entity.Bootcamp
	err := br.db.Collection(bootcampCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		br.log.Error("Failed to find bootcamp by ID",
			zap.Error(err),
			zap.String("bootcamp_id", id.Hex()),
		)
		return nil, fmt.Errorf("find bootcamp by ID %s: %w", id.Hex(), err)
	}

	return &bootcamp, nil
}

// FindAllWithCreator lists bootcamps newest first and joins each creator
// in a second query, composed here so handlers get a single DTO
func (br *bootcampRepository) FindAllWithCreator(ctx context.Context, limit, offset int) ([]*BootcampWithCreator, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	if offset > 0 {
		findOptions.SetSkip(int64(offset))
	}

	cursor, err := br.db.Collection(bootcampCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		br.log.Error("Failed to list bootcamps", zap.Error(err))
		return nil, fmt.Errorf("list bootcamps: %w", err)
	}
	defer cursor.Close(ctx)

	var bootcamps []*entity.Bootcamp
	creatorIDs := make(map[bson.ObjectID]bool)
	for cursor.Next(ctx) {
		var bootcamp entity.Bootcamp
		if err := cursor.Decode(&bootcamp); err != nil {
			br.log.Error("Failed to decode bootcamp document", zap.Error(err))
			return nil, fmt.Errorf("decode bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, &bootcamp)
		creatorIDs[bootcamp.CreatedBy] = true
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate bootcamps: %w", err)
	}

	// Join creators by id
	creators, err := br.findCreators(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*BootcampWithCreator, 0, len(bootcamps))
	for _, bootcamp := range bootcamps {
		result = append(result, &BootcampWithCreator{
			Bootcamp: bootcamp,
			Creator:  creators[bootcamp.CreatedBy],
		})
	}

	return result, nil
}

func (br *bootcampRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := br.db.Collection(bootcampCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		br.log.Error("Failed to count bootcamps", zap.Error(err))
		return 0, fmt.Errorf("count bootcamps: %w", err)
	}

	return count, nil
}

func (br *bootcampRepository) Update(ctx context.Context, bootcamp *entity.Bootcamp) error {
	bootcamp.UpdatedAt = time.Now()

	result, err := br.db.Collection(bootcampCollection).ReplaceOne(ctx, bson.M{"_id": bootcamp.ID}, bootcamp)
	if err != nil {
		br.log.Error("Failed to update bootcamp",
			zap.Error(err),
			zap.String("bootcamp_id", bootcamp.ID.Hex()),
		)
		return fmt.Errorf("update bootcamp %s: %w", bootcamp.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("bootcamp %s not found", bootcamp.ID.Hex())
	}

	return nil
}

func (br *bootcampRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := br.db.Collection(bootcampCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		br.log.Error("Failed to delete bootcamp",
			zap.Error(err),
			zap.String("bootcamp_id", id.Hex()),
		)
		return fmt.Errorf("delete bootcamp %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("bootcamp %s not found", id.Hex())
	}

	br.log.Info("Bootcamp deleted", zap.String("bootcamp_id", id.Hex()))
	return nil
}

func (br *bootcampRepository) findCreators(ctx context.Context, ids map[bson.ObjectID]bool) (map[bson.ObjectID]*entity.User, error) {
	creators := make(map[bson.ObjectID]*entity.User)
	if len(ids) == 0 {
		return creators, nil
	}

	idList := make([]bson.ObjectID, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}

	cursor, err := br.db.Collection(userCollection).Find(ctx, bson.M{"_id": bson.M{"$in": idList}})
	if err != nil {
		br.log.Error("Failed to load bootcamp creators", zap.Error(err))
		return nil, fmt.Errorf("load bootcamp creators: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user entity.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode creator: %w", err)
		}
		creators[user.ID] = &user
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate creators: %w", err)
	}

	return creators, nil
}
