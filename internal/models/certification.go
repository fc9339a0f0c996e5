package models

import (
	"time"

	"github.com/google/uuid"
)

// Certification rows keep the issue date as free text so in-flight
// credentials can show "In Progress".
type Certification struct {
	ID              uuid.UUID `db:"id" json:"id"`
	OwnerID         uuid.UUID `db:"owner_id" json:"owner_id"`
	Title           string    `db:"title" json:"title" validate:"required"`
	Issuer          string    `db:"issuer" json:"issuer" validate:"required"`
	IssueDate       string    `db:"issue_date" json:"issue_date"`
	CredentialID    string    `db:"credential_id" json:"credential_id"`
	VerificationURL string    `db:"verification_url" json:"verification_url" validate:"omitempty,url"`
	LogoURL         string    `db:"logo_url" json:"logo_url"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (c *Certification) Copy() *Certification {
	cc := *c
	return &cc
}
