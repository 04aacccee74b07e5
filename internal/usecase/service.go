package usecase

import (
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/pkg/mailer"
	"bootcamp-platform/pkg/storage"
	"bootcamp-platform/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Bootcamp     BootcampService
	Registration RegistrationService
	Submission   SubmissionService
	Notification NotificationService
}

func NewService(
	repo *repository.Repository,
	fileStorage storage.FileStorage,
	m *mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	notifier := NewNotificationService(m, config, log)

	return &Service{
		Auth:         NewAuthService(repo, notifier, config, log),
		Bootcamp:     NewBootcampService(repo, fileStorage, notifier, log),
		Registration: NewRegistrationService(repo, notifier, log),
		Submission:   NewSubmissionService(repo, fileStorage, notifier, log),
		Notification: notifier,
	}
}
