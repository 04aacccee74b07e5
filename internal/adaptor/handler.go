package adaptor

import (
	"bootcamp-platform/internal/usecase"
	"bootcamp-platform/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Bootcamp     *BootcampHandler
	Registration *RegistrationHandler
	Submission   *SubmissionHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, config, log),
		Bootcamp:     NewBootcampHandler(service.Bootcamp, log),
		Registration: NewRegistrationHandler(service.Registration, log),
		Submission:   NewSubmissionHandler(service.Submission, log),
	}
}
