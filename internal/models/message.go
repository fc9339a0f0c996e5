package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

func (ms MessageStatus) Valid() bool {
	switch ms {
	case MessageUnread, MessageRead, MessageReplied:
		return true
	}
	return false
}

// ContactMessage is a row written by the public contact form (or the hire-me
// lead form, flagged via HireMe). Status transitions are admin driven; the
// server only validates that the target status is a known one.
type ContactMessage struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Name      string        `db:"name" json:"name" validate:"required"`
	Email     string        `db:"email" json:"email" validate:"required,email"`
	Subject   string        `db:"subject" json:"subject" validate:"required"`
	Body      string        `db:"body" json:"body" validate:"required"`
	Status    MessageStatus `db:"status" json:"status"`
	HireMe    bool          `db:"hire_me" json:"hire_me"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// Copy returns an independent row for snapshot isolation.
func (cm *ContactMessage) Copy() *ContactMessage {
	c := *cm
	return &c
}
