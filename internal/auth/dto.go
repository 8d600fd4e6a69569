package auth

import "github.com/TariqTawalbeh/employees-board/internal/users"

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	RoleID      int     `json:"role_id" validate:"required,oneof=1 2"`
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse returns the created record without credentials.
type RegisterResponse = users.UserDTO

// LoginResponse carries the minted bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
