package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootcamp-platform/internal/data/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByVerificationToken(ctx context.Context, code string) (*entity.User, error)
	FindPendingAdmin(ctx context.Context, email, code string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	FindByBootcamp(ctx context.Context, bootcampID bson.ObjectID) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	AddBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) error
}

type userRepository struct {
	db  *mongo.Database
	log *zap.Logger
}

func NewUserRepository(db *mongo.Database, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

// Create inserts a new user document
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}

	_, err := ur.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		if IsDuplicateKey(err) {
			return err
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{"_id": id})
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{"email": email})
}

// FindByVerificationToken matches a non-expired verification code
func (ur *userRepository) FindByVerificationToken(ctx context.Context, code string) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{
		"verification_token":            code,
		"verification_token_expires_at": bson.M{"$gt": time.Now()},
	})
}

// FindPendingAdmin matches an admin signup awaiting company approval
// with a valid, non-expired code
func (ur *userRepository) FindPendingAdmin(ctx context.Context, email, code string) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{
		"email":                         email,
		"role":                          entity.RoleAdmin,
		"is_admin_verified":             false,
		"verification_token":            code,
		"verification_token_expires_at": bson.M{"$gt": time.Now()},
	})
}

// FindByResetToken matches a non-expired password reset token
func (ur *userRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{
		"reset_password_token":      token,
		"reset_password_expires_at": bson.M{"$gt": time.Now()},
	})
}

// FindByBootcamp returns every user whose enrollment set contains the bootcamp
func (ur *userRepository) FindByBootcamp(ctx context.Context, bootcampID bson.ObjectID) ([]*entity.User, error) {
	cursor, err := ur.db.Collection(userCollection).Find(ctx, bson.M{"bootcamps": bootcampID})
	if err != nil {
		ur.log.Error("Failed to find users by bootcamp",
			zap.Error(err),
			zap.String("bootcamp_id", bootcampID.Hex()),
		)
		return nil, fmt.Errorf("find users by bootcamp %s: %w", bootcampID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	for cursor.Next(ctx) {
		var user entity.User
		if err := cursor.Decode(&user); err != nil {
			ur.log.Error("Failed to decode user document", zap.Error(err))
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Update replaces the stored document. Token fields set to nil are dropped
// from the document entirely (the single-use reset the flows depend on).
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	result, err := ur.db.Collection(userCollection).ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.Hex()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", user.ID.Hex())
	}

	return nil
}

// AddBootcamp appends the bootcamp to the user's enrollment set
func (ur *userRepository) AddBootcamp(ctx context.Context, userID, bootcampID bson.ObjectID) error {
	result, err := ur.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"bootcamps": bootcampID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		ur.log.Error("Failed to add bootcamp to user",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("bootcamp_id", bootcampID.Hex()),
		)
		return fmt.Errorf("add bootcamp to user %s: %w", userID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := ur.db.Collection(userCollection).FindOne(ctx, filter).Decode(&user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}
