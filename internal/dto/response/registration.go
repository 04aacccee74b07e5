package response

import (
	"time"

	"bootcamp-platform/internal/data/repository"
)

type RegistrationResponse struct {
	ID           string            `json:"id"`
	RegisteredAt time.Time         `json:"registered_at"`
	Bootcamp     *BootcampResponse `json:"bootcamp,omitempty"`
}

func RegistrationToResponse(item *repository.RegistrationWithBootcamp) RegistrationResponse {
	resp := RegistrationResponse{
		ID:           item.Registration.ID.Hex(),
		RegisteredAt: item.Registration.RegisteredAt,
	}

	if item.Bootcamp != nil {
		bootcamp := BootcampToResponse(item.Bootcamp)
		resp.Bootcamp = &bootcamp
	}

	return resp
}
