// Package dto holds the request payloads accepted by the API, with their
// validation rules.
package dto

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName            string `json:"first_name" validate:"required,max=255"`
	LastName             string `json:"last_name" validate:"nullable,max=255"`
	UserName             string `json:"user_name" validate:"required,min=3,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest authenticates by username or email plus password.
type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}
