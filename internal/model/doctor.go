package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is immutable reference data; rows are managed outside the API.
type Doctor struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Specialty  string    `db:"specialty" json:"specialty"`
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
