package usecase

import (
	"context"
	"fmt"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/internal/dto/response"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type RegistrationService interface {
	Register(ctx context.Context, userID, bootcampID string) (*response.RegistrationResponse, error)
	ListMine(ctx context.Context, userID string) ([]response.RegistrationResponse, error)
}

type registrationService struct {
	repo     *repository.Repository
	notifier NotificationService
	log      *zap.Logger
}

func NewRegistrationService(
	repo *repository.Repository,
	notifier NotificationService,
	log *zap.Logger,
) RegistrationService {
	return &registrationService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "registration")),
	}
}

func (s *registrationService) Register(ctx context.Context, userID, bootcampID string) (*response.RegistrationResponse, error) {
	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bootcampOID, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	// 1. Bootcamp must exist
	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, bootcampOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return nil, fmt.Errorf("bootcamp not found")
	}

	// 2. One registration per (user, bootcamp)
	existing, err := s.repo.Registration.FindByUserAndBootcamp(ctx, userOID, bootcampOID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration")
	}
	if existing != nil {
		return nil, fmt.Errorf("already registered for this bootcamp")
	}

	// 3. Persist; the unique index rejects a concurrent duplicate
	registration := &entity.Registration{
		UserID:     userOID,
		BootcampID: bootcampOID,
	}
	if err := s.repo.Registration.Create(ctx, registration); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("already registered for this bootcamp")
		}
		s.log.Error("Failed to create registration",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("bootcamp_id", bootcampID),
		)
		return nil, fmt.Errorf("failed to register")
	}

	// 4. Track enrollment on the user document; the ended-bootcamp fan-out
	// queries this set
	if err := s.repo.User.AddBootcamp(ctx, userOID, bootcampOID); err != nil {
		s.log.Warn("Failed to add bootcamp to user enrollment set",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}

	// 5. Confirmation mail with the formatted date range
	user, err := s.repo.User.FindByID(ctx, userOID)
	if err != nil || user == nil {
		s.log.Warn("Could not load user for registration mail",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	} else {
		s.notifier.SendRegistrationConfirmation(user.Email, user.Fullname, bootcamp.Title, bootcamp.StartDate, bootcamp.EndDate)
	}

	s.log.Info("User registered for bootcamp",
		zap.String("user_id", userID),
		zap.String("bootcamp_id", bootcampID),
	)

	resp := response.RegistrationToResponse(&repository.RegistrationWithBootcamp{
		Registration: registration,
		Bootcamp:     bootcamp,
	})
	return &resp, nil
}

func (s *registrationService) ListMine(ctx context.Context, userID string) ([]response.RegistrationResponse, error) {
	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	items, err := s.repo.Registration.FindByUser(ctx, userOID)
	if err != nil {
		s.log.Error("Failed to list registrations", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list registrations")
	}

	result := make([]response.RegistrationResponse, 0, len(items))
	for _, item := range items {
		result = append(result, response.RegistrationToResponse(item))
	}

	return result, nil
}
