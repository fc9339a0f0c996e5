package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) ListMessages(ctx context.Context) ([]*ContactMessage, error) {
	var messages []*ContactMessage
	if err := su.selectAll(MessagesTable, "created_at", false, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*ContactMessage{}
	}
	return messages, nil
}

func (su *SupabaseRepo) InsertMessage(ctx context.Context, msg *ContactMessage) (*ContactMessage, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Status == "" {
		msg.Status = MessageUnread
	}
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	raw, count, err := su.supabaseClient.From(MessagesTable).
		Insert(msg, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact message: %v", err)
	}

	var rows []ContactMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted message: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no message data returned after insert")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) UpdateMessageStatus(ctx context.Context, id uuid.UUID, status MessageStatus) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid message ID")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid message status %q", status)
	}

	_, count, err := su.supabaseClient.From(MessagesTable).
		Update(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update message status: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no message found to update")
	}

	return nil
}

func (su *SupabaseRepo) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid message ID")
	}

	_, count, err := su.supabaseClient.From(MessagesTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete message: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no message found to delete")
	}

	return nil
}
