package dto

import "time"

// RegisterRequest entrada para registro: email, password y su confirmación.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,min=5,max=320"`
	Password        string `json:"password" validate:"required,min=8,max=20,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=320"`
	Password string `json:"password" validate:"required,min=8,max=20"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
