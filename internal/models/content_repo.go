package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// ContentRepo is the remote table API the snapshot store talks to. The
// Supabase implementation lives in the per-entity *_repo.go files; tests use
// an in-memory mock.
type ContentRepo interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) (*Profile, error)
	ListSocialLinks(ctx context.Context, ownerID uuid.UUID) (map[string]string, error)
	ReplaceSocialLinks(ctx context.Context, ownerID uuid.UUID, links map[string]string) error

	ListSkills(ctx context.Context) ([]*Skill, error)
	InsertSkill(ctx context.Context, skill *Skill) (*Skill, error)
	UpdateSkill(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	FindSkillByName(ctx context.Context, ownerID uuid.UUID, name string) (*Skill, error)

	ListProjects(ctx context.Context) ([]*Project, error)
	InsertProject(ctx context.Context, project *Project) (*Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	FindProjectByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*Project, error)

	ListCertifications(ctx context.Context) ([]*Certification, error)
	InsertCertification(ctx context.Context, cert *Certification) (*Certification, error)
	UpdateCertification(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Certification, error)
	DeleteCertification(ctx context.Context, id uuid.UUID) error
	FindCertificationByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*Certification, error)

	ListTimeline(ctx context.Context) ([]*TimelineEvent, error)
	InsertTimelineEvent(ctx context.Context, event *TimelineEvent) (*TimelineEvent, error)
	UpdateTimelineEvent(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*TimelineEvent, error)
	DeleteTimelineEvent(ctx context.Context, id uuid.UUID) error
	FindTimelineEventByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*TimelineEvent, error)

	ListMessages(ctx context.Context) ([]*ContactMessage, error)
	InsertMessage(ctx context.Context, msg *ContactMessage) (*ContactMessage, error)
	UpdateMessageStatus(ctx context.Context, id uuid.UUID, status MessageStatus) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error

	ListSettings(ctx context.Context) (map[string]*SiteSetting, error)
	UpsertSetting(ctx context.Context, setting *SiteSetting) error
	DeleteSetting(ctx context.Context, key string) error

	CountRows(ctx context.Context, table string) (int64, error)
}

// selectAll fetches every row of a table into dest, optionally ordered.
func (su *SupabaseRepo) selectAll(table, orderColumn string, ascending bool, dest interface{}) error {
	query := su.supabaseClient.From(table).Select("*", "exact", false)
	if orderColumn != "" {
		query = query.Order(orderColumn, &postgrest.OrderOpts{Ascending: ascending})
	}

	raw, _, err := query.Execute()
	if err != nil {
		return fmt.Errorf("failed to select from %s: %v", table, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s rows: %v", table, err)
	}

	return nil
}

func (su *SupabaseRepo) CountRows(ctx context.Context, table string) (int64, error) {
	_, count, err := su.supabaseClient.From(table).Select("id", "exact", false).Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %v", table, err)
	}
	return count, nil
}
