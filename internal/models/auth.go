package models

import (
	"github.com/google/uuid"
)

// User represents a row of the users table
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // Hidden from JSON responses
}
