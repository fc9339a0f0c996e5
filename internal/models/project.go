package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OwnerID      uuid.UUID `db:"owner_id" json:"owner_id"`
	Title        string    `db:"title" json:"title" validate:"required"`
	Description  string    `db:"description" json:"description"`
	Technologies []string  `db:"technologies" json:"technologies"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	RepoURL      string    `db:"repo_url" json:"repo_url" validate:"omitempty,url"`
	LiveURL      string    `db:"live_url" json:"live_url" validate:"omitempty,url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (p *Project) Copy() *Project {
	c := *p
	c.Technologies = append([]string(nil), p.Technologies...)
	return &c
}
