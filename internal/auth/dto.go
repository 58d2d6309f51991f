package auth

import (
	"github.com/google/uuid"
)

// RegisterInput carries a new account submission.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Credentials carries a sign-in attempt.
type Credentials struct {
	Email    string
	Password string
}

// UserDTO is the signed-in identity exposed to the storefront.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// SessionDTO is the token pair returned on register, login, and refresh.
type SessionDTO struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}
