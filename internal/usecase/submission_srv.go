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

const defaultRejectionFeedback = "Your project was rejected."

// SubmissionService drives the per-slot review state machine:
// pending -> approved | rejected, with rejected -> pending the only
// re-entrant transition.
type SubmissionService interface {
	Submit(ctx context.Context, userID, bootcampID string, projectNumber int, file *utils.UploadedFile) (*response.SubmissionResponse, error)
	Review(ctx context.Context, reviewerID, submissionID string, req *request.ReviewSubmissionRequest) (*response.SubmissionResponse, error)
	ListMine(ctx context.Context, userID, bootcampID string) ([]response.SubmissionResponse, error)
}

type submissionService struct {
	repo     *repository.Repository
	storage  storage.FileStorage
	notifier NotificationService
	log      *zap.Logger
}

func NewSubmissionService(
	repo *repository.Repository,
	fileStorage storage.FileStorage,
	notifier NotificationService,
	log *zap.Logger,
) SubmissionService {
	return &submissionService{
		repo:     repo,
		storage:  fileStorage,
		notifier: notifier,
		log:      log.With(zap.String("service", "submission")),
	}
}

func (s *submissionService) Submit(ctx context.Context, userID, bootcampID string, projectNumber int, file *utils.UploadedFile) (*response.SubmissionResponse, error) {
	// 1. Validate input
	if projectNumber != 1 && projectNumber != 2 {
		return nil, fmt.Errorf("validation failed: projectNumber must be 1 or 2")
	}
	if file == nil {
		return nil, fmt.Errorf("validation failed: PDF file is required")
	}

	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bootcampOID, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	// 2. Bootcamp must exist
	bootcamp, err := s.repo.Bootcamp.FindByID(ctx, bootcampOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootcamp")
	}
	if bootcamp == nil {
		return nil, fmt.Errorf("bootcamp not found")
	}

	user, err := s.repo.User.FindByID(ctx, userOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 3. Both slots filled with nothing rejected blocks every new upload,
	// whatever slot it targets
	existing, err := s.repo.Submission.FindByUserAndBootcamp(ctx, userOID, bootcampOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions")
	}
	if len(existing) == 2 && noneRejected(existing) {
		return nil, fmt.Errorf("already submitted both projects, wait for review results")
	}

	// 4. Resolve the target slot
	var submission *entity.ProjectSubmission
	for _, sub := range existing {
		if sub.ProjectNumber == projectNumber {
			submission = sub
			break
		}
	}

	if submission != nil && submission.Status != entity.SubmissionRejected {
		return nil, fmt.Errorf("cannot re-upload this project unless it was rejected")
	}

	// Upload the new file before touching the row
	publicID := fmt.Sprintf("%s-project%d-%d", userID, projectNumber, time.Now().UnixMilli())
	stored, err := s.storage.UploadPDF(ctx, file.File, publicID)
	if err != nil {
		s.log.Error("Failed to upload project PDF",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("project_number", projectNumber),
		)
		return nil, fmt.Errorf("failed to upload project file")
	}

	if submission != nil {
		// Resubmission: release the rejected file best-effort, swap the
		// reference and reset the slot to pending
		if err := s.storage.DestroyRaw(ctx, submission.FilePublicID); err != nil {
			s.log.Warn("Failed to delete old project PDF",
				zap.Error(err),
				zap.String("public_id", submission.FilePublicID),
			)
		}

		submission.FileURL = stored.URL
		submission.FilePublicID = stored.PublicID
		submission.Status = entity.SubmissionPending

		if err := s.repo.Submission.Update(ctx, submission); err != nil {
			s.log.Error("Failed to update submission", zap.Error(err), zap.String("submission_id", submission.ID.Hex()))
			return nil, fmt.Errorf("failed to submit project")
		}
	} else {
		submission = &entity.ProjectSubmission{
			UserID:        userOID,
			BootcampID:    bootcampOID,
			ProjectNumber: projectNumber,
			Name:          user.Fullname,
			Email:         user.Email,
			FileURL:       stored.URL,
			FilePublicID:  stored.PublicID,
			Status:        entity.SubmissionPending,
		}

		if err := s.repo.Submission.Create(ctx, submission); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, fmt.Errorf("cannot re-upload this project unless it was rejected")
			}
			s.log.Error("Failed to create submission",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.Int("project_number", projectNumber),
			)
			return nil, fmt.Errorf("failed to submit project")
		}
	}

	// 5. Once both slots are populated, notify the org and the user.
	// This fires on every submit with both slots present, resubmissions
	// included.
	submissions, err := s.repo.Submission.FindByUserAndBootcamp(ctx, userOID, bootcampOID)
	if err != nil {
		s.log.Warn("Failed to reload submissions for notification", zap.Error(err))
	} else if hasSlot(submissions, 1) && hasSlot(submissions, 2) {
		s.notifier.SendOrgProjectSubmission(user.Fullname, user.Email, bootcamp.Title, submissions)
		s.notifier.SendUserProjectConfirmation(user.Email, user.Fullname, bootcamp.Title)
	}

	s.log.Info("Project submitted",
		zap.String("user_id", userID),
		zap.String("bootcamp_id", bootcampID),
		zap.Int("project_number", projectNumber),
	)

	// 6. Return the persisted row
	resp := response.SubmissionToResponse(submission)
	return &resp, nil
}

func (s *submissionService) Review(ctx context.Context, reviewerID, submissionID string, req *request.ReviewSubmissionRequest) (*response.SubmissionResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reviewerOID, err := bson.ObjectIDFromHex(reviewerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", reviewerID, err)
	}
	submissionOID, err := bson.ObjectIDFromHex(submissionID)
	if err != nil {
		return nil, fmt.Errorf("invalid submission ID format %s: %w", submissionID, err)
	}

	// 2. Load submission
	submission, err := s.repo.Submission.FindByID(ctx, submissionOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission")
	}
	if submission == nil {
		return nil, fmt.Errorf("submission not found")
	}

	// 3. Apply verdict
	now := time.Now()
	submission.Status = entity.SubmissionStatus(req.Status)
	submission.ReviewedBy = &reviewerOID
	submission.ReviewedAt = &now

	if submission.Status == entity.SubmissionRejected {
		feedback := req.Feedback
		if feedback == "" {
			feedback = defaultRejectionFeedback
		}
		submission.Feedback = &feedback
	}

	if err := s.repo.Submission.Update(ctx, submission); err != nil {
		s.log.Error("Failed to store review", zap.Error(err), zap.String("submission_id", submissionID))
		return nil, fmt.Errorf("failed to review submission")
	}

	// 4. Notify the submitter
	bootcampTitle := ""
	if bootcamp, err := s.repo.Bootcamp.FindByID(ctx, submission.BootcampID); err == nil && bootcamp != nil {
		bootcampTitle = bootcamp.Title
	}

	switch submission.Status {
	case entity.SubmissionApproved:
		s.notifier.SendProjectApprovedEmail(submission.Email, submission.Name, bootcampTitle, submission.ProjectNumber)

		// The completion mail requires exactly two rows, both approved
		submissions, err := s.repo.Submission.FindByUserAndBootcamp(ctx, submission.UserID, submission.BootcampID)
		if err != nil {
			s.log.Warn("Failed to reload submissions for completion check", zap.Error(err))
		} else if len(submissions) == 2 && allApproved(submissions) {
			s.notifier.SendAllProjectsApprovedEmail(submission.Email, submission.Name, bootcampTitle)
		}

	case entity.SubmissionRejected:
		s.notifier.SendProjectRejectedEmail(submission.Email, submission.Name, bootcampTitle, submission.ProjectNumber, *submission.Feedback)
	}

	s.log.Info("Submission reviewed",
		zap.String("submission_id", submissionID),
		zap.String("status", string(submission.Status)),
		zap.String("reviewed_by", reviewerID),
	)

	resp := response.SubmissionToResponse(submission)
	return &resp, nil
}

func (s *submissionService) ListMine(ctx context.Context, userID, bootcampID string) ([]response.SubmissionResponse, error) {
	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bootcampOID, err := bson.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, fmt.Errorf("invalid bootcamp ID format %s: %w", bootcampID, err)
	}

	submissions, err := s.repo.Submission.FindByUserAndBootcamp(ctx, userOID, bootcampOID)
	if err != nil {
		s.log.Error("Failed to list submissions",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("bootcamp_id", bootcampID),
		)
		return nil, fmt.Errorf("failed to list submissions")
	}

	return response.SubmissionsToResponse(submissions), nil
}

func noneRejected(submissions []*entity.ProjectSubmission) bool {
	for _, sub := range submissions {
		if sub.Status == entity.SubmissionRejected {
			return false
		}
	}
	return true
}

func allApproved(submissions []*entity.ProjectSubmission) bool {
	for _, sub := range submissions {
		if sub.Status != entity.SubmissionApproved {
			return false
		}
	}
	return true
}

func hasSlot(submissions []*entity.ProjectSubmission, projectNumber int) bool {
	for _, sub := range submissions {
		if sub.ProjectNumber == projectNumber {
			return true
		}
	}
	return false
}
