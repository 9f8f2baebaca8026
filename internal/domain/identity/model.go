package identity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("User not found")
	ErrConflict           = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidAccountType = errors.New("Invalid user account type")
)

const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Name          string     `json:"name"`
	UserType      string     `json:"user_type"`
	Specialty     *string    `json:"specialty,omitempty"`
	LicenseNumber *string    `json:"license_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// UserView is the public shape of a user. Type mirrors UserType for clients
// that read the older key.
type UserView struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	UserType      string     `json:"user_type"`
	Type          string     `json:"type"`
	Specialty     *string    `json:"specialty,omitempty"`
	LicenseNumber *string    `json:"license_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

func (u *User) View() UserView {
	return UserView{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		UserType:      u.UserType,
		Type:          u.UserType,
		Specialty:     u.Specialty,
		LicenseNumber: u.LicenseNumber,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}

type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,notblank,email"`
	Password      string  `json:"password" validate:"required,notblank,max=72"`
	Name          string  `json:"name" validate:"required,notblank,max=200"`
	UserType      string  `json:"user_type" validate:"required,oneof=patient doctor"`
	Specialty     *string `json:"specialty,omitempty" validate:"omitempty,max=200"`
	LicenseNumber *string `json:"license_number,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful register or login.
type Session struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}
