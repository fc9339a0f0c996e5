package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/models"
)

// Mutations apply to the local snapshot first so the admin panel sees the
// change immediately, then write through to the remote store. A failed remote
// write is returned to the caller and schedules a refetch, so the snapshot
// reconciles with remote truth instead of drifting.

// applyChanges overlays a partial-update map onto an entity struct.
func applyChanges(target interface{}, changes map[string]interface{}) error {
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to marshal changes: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to apply changes: %v", err)
	}
	return nil
}

// SaveProfile validates and writes the single profile row plus its social
// link rows.
func (s *Store) SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := models.Validate.Struct(profile); err != nil {
		return nil, err
	}
	if profile.SocialLinks == nil {
		profile.SocialLinks = map[string]string{}
	}

	s.mu.Lock()
	if profile.ID == uuid.Nil {
		profile.ID = s.snap.Profile.ID
	}
	s.snap.Profile = profile
	s.mu.Unlock()

	saved, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to save profile: %v", err)
	}

	if err := s.repo.ReplaceSocialLinks(ctx, saved.ID, profile.SocialLinks); err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to save social links: %v", err)
	}

	s.mu.Lock()
	s.snap.Profile = saved
	s.mu.Unlock()

	s.ScheduleRefresh()
	return saved, nil
}

// ---- skills ----

func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	skill.ClampLevel()
	if err := models.Validate.Struct(skill); err != nil {
		return nil, err
	}
	skill.OwnerID = s.OwnerID()

	s.mu.Lock()
	s.snap.Skills = append(s.snap.Skills, skill.Copy())
	s.mu.Unlock()

	created, err := s.repo.InsertSkill(ctx, skill)
	if err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to create skill: %v", err)
	}

	// refetch picks up the server-assigned row
	s.ScheduleRefresh()
	return created, nil
}

func (s *Store) resolveSkill(ctx context.Context, ref models.RowRef) (uuid.UUID, error) {
	if ref.Persisted() {
		return ref.ID(), nil
	}
	skill, err := s.repo.FindSkillByName(ctx, s.OwnerID(), ref.Title())
	if err != nil {
		return uuid.Nil, err
	}
	return skill.ID, nil
}

func (s *Store) UpdateSkill(ctx context.Context, ref models.RowRef, changes map[string]interface{}) (*models.Skill, error) {
	id, err := s.resolveSkill(ctx, ref)
	if err != nil {
		return nil, err
	}

	if level, ok := changes["level"]; ok {
		if n, ok := level.(float64); ok {
			if n < 0 {
				changes["level"] = 0
			}
			if n > 100 {
				changes["level"] = 100
			}
		}
	}

	s.mu.Lock()
	for _, skill := range s.snap.Skills {
		if skill.ID == id {
			if err := applyChanges(skill, changes); err != nil {
				s.mu.Unlock()
				return nil, err
			}
			break
		}
	}
	s.mu.Unlock()

	updated, err := s.repo.UpdateSkill(ctx, id, changes)
	if err != nil {
		s.ScheduleRefresh()
		return nil, err
	}

	return updated, nil
}

func (s *Store) DeleteSkill(ctx context.Context, ref models.RowRef) error {
	id, err := s.resolveSkill(ctx, ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i, skill := range s.snap.Skills {
		if skill.ID == id {
			s.snap.Skills = append(s.snap.Skills[:i], s.snap.Skills[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.DeleteSkill(ctx, id); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

// ---- projects ----

func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := models.Validate.Struct(project); err != nil {
		return nil, err
	}
	project.OwnerID = s.OwnerID()

	s.mu.Lock()
	s.snap.Projects = append(s.snap.Projects, project.Copy())
	s.mu.Unlock()

	created, err := s.repo.InsertProject(ctx, project)
	if err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	s.ScheduleRefresh()
	return created, nil
}

func (s *Store) resolveProject(ctx context.Context, ref models.RowRef) (uuid.UUID, error) {
	if ref.Persisted() {
		return ref.ID(), nil
	}
	project, err := s.repo.FindProjectByTitle(ctx, s.OwnerID(), ref.Title())
	if err != nil {
		return uuid.Nil, err
	}
	return project.ID, nil
}

func (s *Store) UpdateProject(ctx context.Context, ref models.RowRef, changes map[string]interface{}) (*models.Project, error) {
	id, err := s.resolveProject(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, project := range s.snap.Projects {
		if project.ID == id {
			if err := applyChanges(project, changes); err != nil {
				s.mu.Unlock()
				return nil, err
			}
			break
		}
	}
	s.mu.Unlock()

	updated, err := s.repo.UpdateProject(ctx, id, changes)
	if err != nil {
		s.ScheduleRefresh()
		return nil, err
	}

	return updated, nil
}

func (s *Store) DeleteProject(ctx context.Context, ref models.RowRef) error {
	id, err := s.resolveProject(ctx, ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i, project := range s.snap.Projects {
		if project.ID == id {
			s.snap.Projects = append(s.snap.Projects[:i], s.snap.Projects[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

// ---- certifications ----

func (s *Store) CreateCertification(ctx context.Context, cert *models.Certification) (*models.Certification, error) {
	if err := models.Validate.Struct(cert); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cert.IssueDate) == "" {
		cert.IssueDate = "In Progress"
	}
	cert.OwnerID = s.OwnerID()

	s.mu.Lock()
	s.snap.Certifications = append(s.snap.Certifications, cert.Copy())
	s.mu.Unlock()

	created, err := s.repo.InsertCertification(ctx, cert)
	if err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to create certification: %v", err)
	}

	s.ScheduleRefresh()
	return created, nil
}

func (s *Store) resolveCertification(ctx context.Context, ref models.RowRef) (uuid.UUID, error) {
	if ref.Persisted() {
		return ref.ID(), nil
	}
	cert, err := s.repo.FindCertificationByTitle(ctx, s.OwnerID(), ref.Title())
	if err != nil {
		return uuid.Nil, err
	}
	return cert.ID, nil
}

func (s *Store) UpdateCertification(ctx context.Context, ref models.RowRef, changes map[string]interface{}) (*models.Certification, error) {
	id, err := s.resolveCertification(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, cert := range s.snap.Certifications {
		if cert.ID == id {
			if err := applyChanges(cert, changes); err != nil {
				s.mu.Unlock()
				return nil, err
			}
			break
		}
	}
	s.mu.Unlock()

	updated, err := s.repo.UpdateCertification(ctx, id, changes)
	if err != nil {
		s.ScheduleRefresh()
		return nil, err
	}

	return updated, nil
}

func (s *Store) DeleteCertification(ctx context.Context, ref models.RowRef) error {
	id, err := s.resolveCertification(ctx, ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i, cert := range s.snap.Certifications {
		if cert.ID == id {
			s.snap.Certifications = append(s.snap.Certifications[:i], s.snap.Certifications[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.DeleteCertification(ctx, id); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

// ---- timeline ----

func (s *Store) CreateTimelineEvent(ctx context.Context, event *models.TimelineEvent) (*models.TimelineEvent, error) {
	if !event.Category.Valid() {
		return nil, fmt.Errorf("invalid timeline category %q", event.Category)
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, err
	}
	event.OwnerID = s.OwnerID()

	s.mu.Lock()
	// new entries land at the bottom of the manual ordering
	maxIndex := 0
	for _, existing := range s.snap.Timeline {
		if existing.OrderIndex > maxIndex {
			maxIndex = existing.OrderIndex
		}
	}
	if event.OrderIndex == 0 {
		event.OrderIndex = maxIndex + 1
	}
	s.snap.Timeline = append(s.snap.Timeline, event.Copy())
	models.SortTimeline(s.snap.Timeline)
	s.mu.Unlock()

	created, err := s.repo.InsertTimelineEvent(ctx, event)
	if err != nil {
		s.ScheduleRefresh()
		return nil, fmt.Errorf("failed to create timeline event: %v", err)
	}

	s.ScheduleRefresh()
	return created, nil
}

func (s *Store) resolveTimelineEvent(ctx context.Context, ref models.RowRef) (uuid.UUID, error) {
	if ref.Persisted() {
		return ref.ID(), nil
	}
	event, err := s.repo.FindTimelineEventByTitle(ctx, s.OwnerID(), ref.Title())
	if err != nil {
		return uuid.Nil, err
	}
	return event.ID, nil
}

func (s *Store) UpdateTimelineEvent(ctx context.Context, ref models.RowRef, changes map[string]interface{}) (*models.TimelineEvent, error) {
	if category, ok := changes["category"].(string); ok {
		if !models.TimelineCategory(category).Valid() {
			return nil, fmt.Errorf("invalid timeline category %q", category)
		}
	}

	id, err := s.resolveTimelineEvent(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, event := range s.snap.Timeline {
		if event.ID == id {
			if err := applyChanges(event, changes); err != nil {
				s.mu.Unlock()
				return nil, err
			}
			break
		}
	}
	models.SortTimeline(s.snap.Timeline)
	s.mu.Unlock()

	updated, err := s.repo.UpdateTimelineEvent(ctx, id, changes)
	if err != nil {
		s.ScheduleRefresh()
		return nil, err
	}

	return updated, nil
}

func (s *Store) DeleteTimelineEvent(ctx context.Context, ref models.RowRef) error {
	id, err := s.resolveTimelineEvent(ctx, ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i, event := range s.snap.Timeline {
		if event.ID == id {
			s.snap.Timeline = append(s.snap.Timeline[:i], s.snap.Timeline[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.DeleteTimelineEvent(ctx, id); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

// MoveTimelineEvent swaps the order_index of the referenced event with its
// neighbor in the given direction ("up" or "down") and writes both rows back.
func (s *Store) MoveTimelineEvent(ctx context.Context, ref models.RowRef, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down")
	}

	id, err := s.resolveTimelineEvent(ctx, ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	idx := -1
	for i, event := range s.snap.Timeline {
		if event.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return fmt.Errorf("timeline event not found in snapshot")
	}

	neighbor := idx - 1
	if direction == "down" {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(s.snap.Timeline) {
		s.mu.Unlock()
		return fmt.Errorf("event is already at the %s end", direction)
	}

	a := s.snap.Timeline[idx]
	b := s.snap.Timeline[neighbor]
	a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
	models.SortTimeline(s.snap.Timeline)
	aID, aIdx := a.ID, a.OrderIndex
	bID, bIdx := b.ID, b.OrderIndex
	s.mu.Unlock()

	if _, err := s.repo.UpdateTimelineEvent(ctx, aID, map[string]interface{}{"order_index": aIdx}); err != nil {
		s.ScheduleRefresh()
		return fmt.Errorf("failed to reorder timeline: %v", err)
	}
	if _, err := s.repo.UpdateTimelineEvent(ctx, bID, map[string]interface{}{"order_index": bIdx}); err != nil {
		s.ScheduleRefresh()
		return fmt.Errorf("failed to reorder timeline: %v", err)
	}

	return nil
}

// ---- contact messages ----

// SubmitMessage handles the public contact and hire-me forms. Validation runs
// before any remote call; an invalid submission never produces a write.
func (s *Store) SubmitMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	msg.Status = models.MessageUnread
	if err := models.Validate.Struct(msg); err != nil {
		return nil, err
	}

	created, err := s.repo.InsertMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to submit message: %v", err)
	}

	s.mu.Lock()
	s.snap.Messages = append([]*models.ContactMessage{created}, s.snap.Messages...)
	s.mu.Unlock()

	return created, nil
}

func (s *Store) SetMessageStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid message status %q", status)
	}

	s.mu.Lock()
	for _, msg := range s.snap.Messages {
		if msg.ID == id {
			msg.Status = status
			msg.UpdatedAt = time.Now()
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.UpdateMessageStatus(ctx, id, status); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	for i, msg := range s.snap.Messages {
		if msg.ID == id {
			s.snap.Messages = append(s.snap.Messages[:i], s.snap.Messages[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

// ---- site settings ----

func (s *Store) PutSetting(ctx context.Context, setting *models.SiteSetting) error {
	if err := models.Validate.Struct(setting); err != nil {
		return err
	}

	s.mu.Lock()
	s.snap.Settings[setting.Key] = setting
	s.mu.Unlock()

	if err := s.repo.UpsertSetting(ctx, setting); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}

func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.snap.Settings, key)
	s.mu.Unlock()

	if err := s.repo.DeleteSetting(ctx, key); err != nil {
		s.ScheduleRefresh()
		return err
	}

	return nil
}
