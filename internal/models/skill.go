package models

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Category  string    `db:"category" json:"category" validate:"required"`
	Level     int       `db:"level" json:"level" validate:"gte=0,lte=100"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (s *Skill) Copy() *Skill {
	c := *s
	return &c
}

// ClampLevel forces the proficiency level into [0, 100]. Callers that want a
// hard rejection instead use Validate.Struct; the admin form clamps.
func (s *Skill) ClampLevel() {
	if s.Level < 0 {
		s.Level = 0
	}
	if s.Level > 100 {
		s.Level = 100
	}
}
