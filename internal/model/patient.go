package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the registered account that owns appointments. Email is the
// login identifier and is stored lowercased.
type Patient struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name,omitempty"`
	Phone        string     `db:"phone" json:"phone,omitempty"`
	Birthday     *time.Time `db:"birthday" json:"birthday,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     string  `json:"name" binding:"max=100"`
	Phone    string  `json:"phone" binding:"max=20"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
}
