package models

import (
	"encoding/json"
	"time"
)

// SiteSetting is a generic key/value row (logo URL, SEO text, brand colors).
// The value column is JSON typed so it is carried opaquely.
type SiteSetting struct {
	Key         string          `db:"key" json:"key" validate:"required"`
	Value       json.RawMessage `db:"value" json:"value" validate:"required"`
	Description string          `db:"description" json:"description"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (ss *SiteSetting) Copy() *SiteSetting {
	c := *ss
	c.Value = append(json.RawMessage(nil), ss.Value...)
	return &c
}
