package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the single owner row rendered on the public hero/about sections.
// It is created on the first admin save and never deleted.
type Profile struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	Name        string            `db:"name" json:"name" validate:"required"`
	Title       string            `db:"title" json:"title" validate:"required"`
	Email       string            `db:"email" json:"email" validate:"omitempty,email"`
	Phone       string            `db:"phone" json:"phone"`
	Location    string            `db:"location" json:"location"`
	Bio         string            `db:"bio" json:"bio"`
	AvatarURL   string            `db:"avatar_url" json:"avatar_url"`
	SocialLinks map[string]string `db:"social_links" json:"social_links"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}
