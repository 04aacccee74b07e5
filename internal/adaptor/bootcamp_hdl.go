package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"bootcamp-platform/internal/dto/request"
	"bootcamp-platform/internal/usecase"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BootcampHandler struct {
	service usecase.BootcampService
	log     *zap.Logger
}

func NewBootcampHandler(service usecase.BootcampService, log *zap.Logger) *BootcampHandler {
	return &BootcampHandler{
		service: service,
		log:     log,
	}
}

// GetBootcamps handles GET /api/bootcamps
func (h *BootcampHandler) GetBootcamps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.parseInt(query.Get("page"), 1)
	perPage := h.parseInt(query.Get("per_page"), 20)

	// Validate per_page max
	if perPage > 100 {
		perPage = 100
	}

	response, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		h.handleServiceError(w, err, "list bootcamps")
		return
	}

	utils.ResponseSuccess(w, "Bootcamps retrieved successfully", response)
}

// GetBootcampByID handles GET /api/bootcamps/{id}
func (h *BootcampHandler) GetBootcampByID(w http.ResponseWriter, r *http.Request) {
	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	response, err := h.service.Get(r.Context(), bootcampID)
	if err != nil {
		h.handleServiceError(w, err, "get bootcamp")
		return
	}

	utils.ResponseSuccess(w, "Bootcamp retrieved successfully", response)
}

// CreateBootcamp handles POST /api/bootcamps (admin only).
// The body is multipart form data so a cover image can ride along.
func (h *BootcampHandler) CreateBootcamp(w http.ResponseWriter, r *http.Request) {
	// Get admin ID from context (set by auth middleware)
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.CreateBootcampRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		StartDate:   r.FormValue("startDate"),
		EndDate:     r.FormValue("endDate"),
	}

	// Cover image is optional
	image, err := utils.ParseImageUpload(r, "coverImage")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	if image != nil {
		defer image.File.Close()
	}

	response, err := h.service.Create(r.Context(), adminID, req, image)
	if err != nil {
		h.handleServiceError(w, err, "create bootcamp")
		return
	}

	utils.ResponseCreated(w, "Bootcamp created successfully", response)
}

// UpdateBootcamp handles PUT /api/bootcamps/{id} (admin only)
func (h *BootcampHandler) UpdateBootcamp(w http.ResponseWriter, r *http.Request) {
	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	req := &request.UpdateBootcampRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		StartDate:   r.FormValue("startDate"),
		EndDate:     r.FormValue("endDate"),
	}

	image, err := utils.ParseImageUpload(r, "coverImage")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	if image != nil {
		defer image.File.Close()
	}

	response, err := h.service.Update(r.Context(), bootcampID, req, image)
	if err != nil {
		h.handleServiceError(w, err, "update bootcamp")
		return
	}

	utils.ResponseSuccess(w, "Bootcamp updated successfully", response)
}

// UpdateBootcampStatus handles PUT /api/bootcamps/{id}/status (admin only)
func (h *BootcampHandler) UpdateBootcampStatus(w http.ResponseWriter, r *http.Request) {
	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	var req request.UpdateBootcampStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.SetActive(r.Context(), bootcampID, *req.IsActive)
	if err != nil {
		h.handleServiceError(w, err, "update bootcamp status")
		return
	}

	utils.ResponseSuccess(w, "Bootcamp status updated successfully", response)
}

// DeleteBootcamp handles DELETE /api/bootcamps/{id} (admin only)
func (h *BootcampHandler) DeleteBootcamp(w http.ResponseWriter, r *http.Request) {
	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), bootcampID); err != nil {
		h.handleServiceError(w, err, "delete bootcamp")
		return
	}

	utils.ResponseSuccess(w, "Bootcamp deleted successfully", nil)
}

// handleServiceError handles errors for bootcamp operations
func (h *BootcampHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
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

// parseInt helper for query parameters
func (h *BootcampHandler) parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
