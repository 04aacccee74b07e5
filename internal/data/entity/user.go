package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base              `bson:",inline"`
	Fullname          string          `bson:"fullname"`
	Email             string          `bson:"email"`
	PasswordHash      string          `bson:"password"`
	Role              UserRole        `bson:"role"`
	IsAccountVerified bool            `bson:"is_account_verified"`
	IsAdminVerified   bool            `bson:"is_admin_verified"`
	LastLogin         time.Time       `bson:"last_login"`
	Bootcamps         []bson.ObjectID `bson:"bootcamps"`

	// Single-use tokens; cleared the moment they are consumed
	VerificationToken          *string    `bson:"verification_token,omitempty"`
	VerificationTokenExpiresAt *time.Time `bson:"verification_token_expires_at,omitempty"`
	ResetPasswordToken         *string    `bson:"reset_password_token,omitempty"`
	ResetPasswordExpiresAt     *time.Time `bson:"reset_password_expires_at,omitempty"`
}

// HasAdminAuthority reports whether the user may act as an admin.
// Role alone is not enough: the company must have approved the signup.
func (u *User) HasAdminAuthority() bool {
	return u.Role == RoleAdmin && u.IsAdminVerified
}
