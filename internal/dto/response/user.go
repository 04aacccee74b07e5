package response

import (
	"time"

	"bootcamp-platform/internal/data/entity"
)

// UserResponse never carries the password hash
type UserResponse struct {
	ID                string          `json:"id"`
	Fullname          string          `json:"fullname"`
	Email             string          `json:"email"`
	Role              entity.UserRole `json:"role"`
	IsAccountVerified bool            `json:"is_account_verified"`
	IsAdminVerified   bool            `json:"is_admin_verified"`
	LastLogin         time.Time       `json:"last_login"`
	Bootcamps         []string        `json:"bootcamps"`
	CreatedAt         time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	bootcamps := make([]string, 0, len(user.Bootcamps))
	for _, id := range user.Bootcamps {
		bootcamps = append(bootcamps, id.Hex())
	}

	return UserResponse{
		ID:                user.ID.Hex(),
		Fullname:          user.Fullname,
		Email:             user.Email,
		Role:              user.Role,
		IsAccountVerified: user.IsAccountVerified,
		IsAdminVerified:   user.IsAdminVerified,
		LastLogin:         user.LastLogin,
		Bootcamps:         bootcamps,
		CreatedAt:         user.CreatedAt,
	}
}
