package adaptor

import (
	"net/http"
	"strings"

	"bootcamp-platform/internal/usecase"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RegistrationHandler struct {
	service usecase.RegistrationService
	log     *zap.Logger
}

func NewRegistrationHandler(service usecase.RegistrationService, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/bootcamps/{id}/register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by auth middleware)
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	response, err := h.service.Register(r.Context(), userID, bootcampID)
	if err != nil {
		h.handleServiceError(w, err, "register for bootcamp")
		return
	}

	utils.ResponseCreated(w, "Registered for bootcamp successfully", response)
}

// GetMyRegistrations handles GET /api/registrations/me
func (h *RegistrationHandler) GetMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	response, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list registrations")
		return
	}

	utils.ResponseSuccess(w, "Registrations retrieved successfully", response)
}

// handleServiceError handles errors for registration operations
func (h *RegistrationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"):
		h.log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
