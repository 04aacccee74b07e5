package response

import (
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/data/repository"
)

type BootcampResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	IsActive    bool             `json:"is_active"`
	CoverImage  *string          `json:"cover_image,omitempty"`
	CreatedBy   *CreatorResponse `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CreatorResponse is the joined creator summary on bootcamp listings
type CreatorResponse struct {
	ID       string          `json:"id"`
	Fullname string          `json:"fullname"`
	Email    string          `json:"email"`
	Role     entity.UserRole `json:"role"`
}

type PaginatedBootcampsResponse struct {
	Bootcamps  []BootcampResponse `json:"bootcamps"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

func BootcampToResponse(bootcamp *entity.Bootcamp) BootcampResponse {
	return BootcampResponse{
		ID:          bootcamp.ID.Hex(),
		Title:       bootcamp.Title,
		Description: bootcamp.Description,
		StartDate:   bootcamp.StartDate,
		EndDate:     bootcamp.EndDate,
		IsActive:    bootcamp.IsActive,
		CoverImage:  bootcamp.CoverImage,
		CreatedAt:   bootcamp.CreatedAt,
	}
}

func BootcampWithCreatorToResponse(item *repository.BootcampWithCreator) BootcampResponse {
	resp := BootcampToResponse(item.Bootcamp)
	if item.Creator != nil {
		resp.CreatedBy = &CreatorResponse{
			ID:       item.Creator.ID.Hex(),
			Fullname: item.Creator.Fullname,
			Email:    item.Creator.Email,
			Role:     item.Creator.Role,
		}
	}
	return resp
}
