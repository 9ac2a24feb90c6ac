package entity

import "time"

// User representa un usuario registrado; es el dueño (owner) de sus categorías.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
