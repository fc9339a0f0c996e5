package models

import (
	"time"

	"github.com/google/uuid"
)

const AccountsTable = "accounts"

// Account mirrors one row of the accounts table, keyed by the GoTrue user ID.
// The Role column is the session-bound admin flag the auth gate checks.
type Account struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email" validate:"required,email"`
	Password  string    `db:"password" json:"password,omitempty" validate:"omitempty,min=8"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
