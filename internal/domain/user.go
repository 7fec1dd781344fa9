package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	FullName                string     `json:"full_name" db:"full_name"`
	Nickname                *string    `json:"nickname,omitempty" db:"nickname"`
	AvatarURL               *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio                     *string    `json:"bio,omitempty" db:"bio"`
	Position                *string    `json:"position,omitempty" db:"position"`
	City                    *string    `json:"city,omitempty" db:"city"`
	Role                    string     `json:"role" db:"role"`
	IsActive                bool       `json:"is_active" db:"is_active"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,min=2"`
	Position *string `json:"position,omitempty" validate:"omitempty,oneof=GOL ZAG LAT VOL MEI ATA"`
	City     *string `json:"city,omitempty"`
}

type UpdateUserInput struct {
	FullName  *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Nickname  **string `json:"nickname,omitempty"`
	Password  *string  `json:"password,omitempty" validate:"omitempty,min=8"`
	AvatarURL **string `json:"avatar_url,omitempty"`
	Bio       **string `json:"bio,omitempty"`
	Position  *string  `json:"position,omitempty" validate:"omitempty,oneof=GOL ZAG LAT VOL MEI ATA"`
	City      *string  `json:"city,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RolePlayer, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole implements the role hierarchy: admin > owner > player.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "owner":
		return u.Role == "owner" || u.Role == "admin"
	case "player":
		return u.Role == "player" || u.Role == "owner" || u.Role == "admin"
	default:
		return false
	}
}
