package usecase

import (
	"context"
	"fmt"
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/internal/dto/request"
	"bootcamp-platform/internal/dto/response"
	"bootcamp-platform/pkg/storage"
	"bootcamp-platform/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type BootcampService interface {
	Create(ctx context.Context, adminID string, req *request.CreateBootcampRequest, image *utils.UploadedFile) (*response.BootcampResponse, error)
	Update(ctx context.Context, bootcampID string, req *request.UpdateBootcampRequest, image *utils.UploadedFile) (*response.BootcampResponse, error)
	List(ctx context.Context, page, perPage int) (*response.PaginatedBootcampsResponse, error)
	Get(ctx context.Context, bootcampID string) (*response.BootcampResponse, error)
	Delete(ctx context.Context, bootcampID string) error
	SetActive(ctx context.Context, bootcampID string, isActive bool) (*response.BootcampResponse, error)
}

type bootcampService struct {
	repo     *repository.Repository
	storage  storage.FileStorage
	notifier NotificationService
	log      *zap.Logger
}

func NewBootcampService(
	repo *repository.Repository,
	fileStorage storage.FileStorage,
	notifier NotificationService,
	log *zap.Logger,
) BootcampService {
	return &bootcampService{
		repo:     repo,
		storage:  fileStorage,
		notifier: notifier,
		log:      log.With(zap.String("service", "bootcamp")),
	}
}

func (s *bootcampService) Create(ctx context.Context, adminID string, req *request.CreateBootcampRequest, image *utils.UploadedFile) (*response.BootcampResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bootcamp validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	creatorID, err := bson.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", adminID, err)
	}

	// 2. Parse dates
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: startDate must be a valid date")
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: endDate must be a valid date")
		}
		endDate = &parsed
	}

	bootcamp := &entity.Bootcamp{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		IsActive:    true,
		CreatedBy:   creatorID,
	}

	// 3. Upload cover image if one was attached
	if image != nil {
		stored, err := s.storage.UploadImage(ctx, image.File)
		if err != nil {
			s.log.Error("Failed to upload cover image", zap.Error(err))
			return nil, fmt.Errorf("failed to upload cover image")
		}
		bootcamp.CoverImage = &stored.URL
		bootcamp.CoverImagePublicID = &stored.PublicID
	}

	// 4. Save
	if err := s.repo.Bootcamp.Create(ctx, bootcamp); err != nil {
		s.log.Error("Failed to create bootcamp", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create bootcamp")
	}

	s.log.Info("Bootcamp created",
		zap.String("bootcamp_id", bootcamp.ID.Hex()),
		zap.String("title", bootcamp.Title),
	)

	resp := response.BootcampToResponse(bootcamp)
	return &resp, nil
}

func (s *bootcampService) Update(ctx context.Context, bootcampID string, req *request.UpdateBootcampRequest, image *utils.UploadedFile) (*response.BootcampResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update bootcamp validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	// 2. Load existing
	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return nil, fmt.Errorf("bootcamp not found")
	}

	// 3. Apply field updates; empty fields keep the stored value
	if req.Title != "" {
		bootcamp.Title = req.Title
	}
	if req.Description != "" {
		bootcamp.Description = req.Description
	}
	if req.StartDate != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: startDate must be a valid date")
		}
		bootcamp.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: endDate must be a valid date")
		}
		bootcamp.EndDate = &endDate
	}

	// 4. Replace cover image: upload the new one, then release the old
	// blob best-effort
	if image != nil {
		oldPublicID := bootcamp.CoverImagePublicID

		stored, err := s.storage.UploadImage(ctx, image.File)
		if err != nil {
			s.log.Error("Failed to upload cover image", zap.Error(err))
			return nil, fmt.Errorf("failed to upload cover image")
		}
		bootcamp.CoverImage = &stored.URL
		bootcamp.CoverImagePublicID = &stored.PublicID

		if oldPublicID != nil {
			if err := s.storage.Destroy(ctx, *oldPublicID); err != nil {
				s.log.Warn("Failed to delete old cover image",
					zap.Error(err),
					zap.String("public_id", *oldPublicID),
				)
			}
		}
	}

	// 5. Save
	if err := s.repo.Bootcamp.Update(ctx, bootcamp); err != nil {
		s.log.Error("Failed to update bootcamp", zap.Error(err), zap.String("bootcamp_id", bootcampID))
		return nil, fmt.Errorf("failed to update bootcamp")
	}

	s.log.Info("Bootcamp updated", zap.String("bootcamp_id", bootcampID))

	resp := response.BootcampToResponse(bootcamp)
	return &resp, nil
}

func (s *bootcampService) List(ctx context.Context, page, perPage int) (*response.PaginatedBootcampsResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	offset := utils.CalculateOffset(page, perPage)

	items, err := s.repo.Bootcamp.FindAllWithCreator(ctx, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list bootcamps", zap.Error(err))
		return nil, fmt.Errorf("failed to list bootcamps")
	}

	total, err := s.repo.Bootcamp.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bootcamps", zap.Error(err))
		return nil, fmt.Errorf("failed to list bootcamps")
	}

	bootcamps := make([]response.BootcampResponse, 0, len(items))
	for _, item := range items {
		bootcamps = append(bootcamps, response.BootcampWithCreatorToResponse(item))
	}

	return &response.PaginatedBootcampsResponse{
		Bootcamps:  bootcamps,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}

func (s *bootcampService) Get(ctx context.Context, bootcampID string) (*response.BootcampResponse, error) {
	id, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return nil, fmt.Errorf("bootcamp not found")
	}

	resp := response.BootcampToResponse(bootcamp)
	return &resp, nil
}

func (s *bootcampService) Delete(ctx context.Context, bootcampID string) error {
	id, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return fmt.Errorf("bootcamp not found")
	}

	// Release the stored cover image best-effort; a provider failure must
	// not block the delete
	if bootcamp.CoverImagePublicID != nil {
		if err := s.storage.Destroy(ctx, *bootcamp.CoverImagePublicID); err != nil {
			s.log.Warn("Failed to delete cover image",
				zap.Error(err),
				zap.String("public_id", *bootcamp.CoverImagePublicID),
			)
		}
	}

	if err := s.repo.Bootcamp.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete bootcamp", zap.Error(err), zap.String("bootcamp_id", bootcampID))
		return fmt.Errorf("failed to delete bootcamp")
	}

	return nil
}

func (s *bootcampService) SetActive(ctx context.Context, bootcampID string, isActive bool) (*response.BootcampResponse, error) {
	id, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return nil, fmt.Errorf("bootcamp not found")
	}

	wasActive := bootcamp.IsActive
	bootcamp.IsActive = isActive

	if err := s.repo.Bootcamp.Update(ctx, bootcamp); err != nil {
		s.log.Error("Failed to update bootcamp status", zap.Error(err), zap.String("bootcamp_id", bootcampID))
		return nil, fmt.Errorf("failed to update bootcamp status")
	}

	// When the bootcamp just ended, notify everyone enrolled
	if wasActive && !isActive {
		participants, err := s.repo.User.FindByBootcamp(ctx, id)
		if err != nil {
			s.log.Error("Failed to load participants for ended bootcamp",
				zap.Error(err),
				zap.String("bootcamp_id", bootcampID),
			)
		} else {
			s.log.Info("Bootcamp ended, notifying participants",
				zap.String("bootcamp_id", bootcampID),
				zap.Int("participants", len(participants)),
			)
			for _, participant := range participants {
				s.notifier.SendBootcampEndedEmail(participant.Email, participant.Fullname, bootcamp.Title)
			}
		}
	}

	resp := response.BootcampToResponse(bootcamp)
	return &resp, nil
}

// parseDate accepts the date-only and RFC3339 formats clients send
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
