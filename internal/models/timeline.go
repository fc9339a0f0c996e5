package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type TimelineCategory string

const (
	TimelineWork        TimelineCategory = "work"
	TimelineEducation   TimelineCategory = "education"
	TimelineProject     TimelineCategory = "project"
	TimelineAchievement TimelineCategory = "achievement"
)

func (tc TimelineCategory) Valid() bool {
	switch tc {
	case TimelineWork, TimelineEducation, TimelineProject, TimelineAchievement:
		return true
	}
	return false
}

// TimelineEvent is one entry on the career timeline. A nil EndDate means the
// entry is ongoing and renders as "Present".
type TimelineEvent struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	OwnerID      uuid.UUID        `db:"owner_id" json:"owner_id"`
	Title        string           `db:"title" json:"title" validate:"required"`
	Organization string           `db:"organization" json:"organization" validate:"required"`
	Location     string           `db:"location" json:"location"`
	StartDate    time.Time        `db:"start_date" json:"start_date" validate:"required"`
	EndDate      *time.Time       `db:"end_date" json:"end_date"`
	Description  string           `db:"description" json:"description"`
	Category     TimelineCategory `db:"category" json:"category" validate:"required"`
	SkillTags    []string         `db:"skill_tags" json:"skill_tags"`
	ImageURL     string           `db:"image_url" json:"image_url"`
	LinkURL      string           `db:"link_url" json:"link_url" validate:"omitempty,url"`
	OrderIndex   int              `db:"order_index" json:"order_index"`
	Featured     bool             `db:"featured" json:"featured"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (te *TimelineEvent) Copy() *TimelineEvent {
	c := *te
	c.SkillTags = append([]string(nil), te.SkillTags...)
	if te.EndDate != nil {
		end := *te.EndDate
		c.EndDate = &end
	}
	return &c
}

// Ongoing reports whether the event has no end date.
func (te *TimelineEvent) Ongoing() bool {
	return te.EndDate == nil
}

// SortTimeline orders events by order_index ascending, breaking ties by
// start_date descending.
func SortTimeline(events []*TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].OrderIndex != events[j].OrderIndex {
			return events[i].OrderIndex < events[j].OrderIndex
		}
		return events[i].StartDate.After(events[j].StartDate)
	})
}
