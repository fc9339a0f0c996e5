package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) ListCertifications(ctx context.Context) ([]*Certification, error) {
	var certs []*Certification
	if err := su.selectAll(CertificationsTable, "created_at", false, &certs); err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []*Certification{}
	}
	return certs, nil
}

func (su *SupabaseRepo) InsertCertification(ctx context.Context, cert *Certification) (*Certification, error) {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	now := time.Now()
	cert.CreatedAt = now
	cert.UpdatedAt = now

	raw, count, err := su.supabaseClient.From(CertificationsTable).
		Insert(cert, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert certification: %v", err)
	}

	var rows []Certification
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted certification: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no certification data returned after insert")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) UpdateCertification(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Certification, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid certification ID")
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	changes["updated_at"] = time.Now()

	raw, count, err := su.supabaseClient.From(CertificationsTable).
		Update(changes, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update certification: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no certification found to update")
	}

	var rows []Certification
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated certification: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no certification data returned after update")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) DeleteCertification(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid certification ID")
	}

	_, count, err := su.supabaseClient.From(CertificationsTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete certification: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no certification found to delete")
	}

	return nil
}

func (su *SupabaseRepo) FindCertificationByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*Certification, error) {
	query := su.supabaseClient.From(CertificationsTable).
		Select("*", "", false).
		Eq("title", title)
	if ownerID != uuid.Nil {
		query = query.Eq("owner_id", ownerID.String())
	}

	raw, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to find certification by title: %v", err)
	}

	var rows []Certification
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certification rows: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("certification %q not found", title)
	}

	return &rows[0], nil
}
