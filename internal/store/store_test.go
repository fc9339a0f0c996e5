package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/models"
)

// mockContentRepo is an in-memory stand-in for the Supabase repo so the store
// logic is tested without any network. List methods hand out row copies, the
// way the real repo returns freshly unmarshaled rows, so optimistic local
// edits can never leak into the simulated remote state.
type mockContentRepo struct {
	mu sync.Mutex

	profile  *models.Profile
	links    map[string]string
	skills   map[uuid.UUID]*models.Skill
	projects map[uuid.UUID]*models.Project
	certs    map[uuid.UUID]*models.Certification
	timeline map[uuid.UUID]*models.TimelineEvent
	messages map[uuid.UUID]*models.ContactMessage
	settings map[string]*models.SiteSetting

	failAll          bool
	failMessages     bool
	failSkillUpdate  bool
	insertedMessages int
	timelineUpdates  int
}

func newMockRepo() *mockContentRepo {
	return &mockContentRepo{
		links:    map[string]string{},
		skills:   map[uuid.UUID]*models.Skill{},
		projects: map[uuid.UUID]*models.Project{},
		certs:    map[uuid.UUID]*models.Certification{},
		timeline: map[uuid.UUID]*models.TimelineEvent{},
		messages: map[uuid.UUID]*models.ContactMessage{},
		settings: map[string]*models.SiteSetting{},
	}
}

func (m *mockContentRepo) err() error {
	if m.failAll {
		return fmt.Errorf("remote store unavailable")
	}
	return nil
}

func (m *mockContentRepo) GetProfile(_ context.Context) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	if m.profile == nil {
		return nil, fmt.Errorf("profile not found")
	}
	p := *m.profile
	return &p, nil
}

func (m *mockContentRepo) UpsertProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	m.profile = p
	return p, nil
}

func (m *mockContentRepo) ListSocialLinks(_ context.Context, _ uuid.UUID) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	links := make(map[string]string, len(m.links))
	for k, v := range m.links {
		links[k] = v
	}
	return links, nil
}

func (m *mockContentRepo) ReplaceSocialLinks(_ context.Context, _ uuid.UUID, links map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return err
	}
	m.links = links
	return nil
}

func (m *mockContentRepo) ListSkills(_ context.Context) ([]*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	out := []*models.Skill{}
	for _, s := range m.skills {
		out = append(out, s.Copy())
	}
	return out, nil
}

func (m *mockContentRepo) InsertSkill(_ context.Context, s *models.Skill) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	m.skills[s.ID] = &stored
	return &stored, nil
}

func (m *mockContentRepo) UpdateSkill(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSkillUpdate {
		return nil, fmt.Errorf("write rejected")
	}
	skill, ok := m.skills[id]
	if !ok {
		return nil, fmt.Errorf("no skill found to update")
	}
	if name, ok := changes["name"].(string); ok {
		skill.Name = name
	}
	if level, ok := changes["level"].(float64); ok {
		skill.Level = int(level)
	}
	if level, ok := changes["level"].(int); ok {
		skill.Level = level
	}
	return skill, nil
}

func (m *mockContentRepo) DeleteSkill(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[id]; !ok {
		return fmt.Errorf("no skill found to delete")
	}
	delete(m.skills, id)
	return nil
}

func (m *mockContentRepo) FindSkillByName(_ context.Context, _ uuid.UUID, name string) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skills {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("skill %q not found", name)
}

func (m *mockContentRepo) ListProjects(_ context.Context) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	out := []*models.Project{}
	for _, p := range m.projects {
		out = append(out, p.Copy())
	}
	return out, nil
}

func (m *mockContentRepo) InsertProject(_ context.Context, p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	m.projects[p.ID] = &stored
	return &stored, nil
}

func (m *mockContentRepo) UpdateProject(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("no project found to update")
	}
	if title, ok := changes["title"].(string); ok {
		project.Title = title
	}
	return project, nil
}

func (m *mockContentRepo) DeleteProject(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

func (m *mockContentRepo) FindProjectByTitle(_ context.Context, _ uuid.UUID, title string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %q not found", title)
}

func (m *mockContentRepo) ListCertifications(_ context.Context) ([]*models.Certification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	out := []*models.Certification{}
	for _, c := range m.certs {
		out = append(out, c.Copy())
	}
	return out, nil
}

func (m *mockContentRepo) InsertCertification(_ context.Context, c *models.Certification) (*models.Certification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	m.certs[c.ID] = &stored
	return &stored, nil
}

func (m *mockContentRepo) UpdateCertification(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Certification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cert, ok := m.certs[id]
	if !ok {
		return nil, fmt.Errorf("no certification found to update")
	}
	return cert, nil
}

func (m *mockContentRepo) DeleteCertification(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.certs, id)
	return nil
}

func (m *mockContentRepo) FindCertificationByTitle(_ context.Context, _ uuid.UUID, title string) (*models.Certification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.certs {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, fmt.Errorf("certification %q not found", title)
}

func (m *mockContentRepo) ListTimeline(_ context.Context) ([]*models.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	out := []*models.TimelineEvent{}
	for _, e := range m.timeline {
		out = append(out, e.Copy())
	}
	models.SortTimeline(out)
	return out, nil
}

func (m *mockContentRepo) InsertTimelineEvent(_ context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := *e
	m.timeline[e.ID] = &stored
	return &stored, nil
}

func (m *mockContentRepo) UpdateTimelineEvent(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.timeline[id]
	if !ok {
		return nil, fmt.Errorf("no timeline event found to update")
	}
	m.timelineUpdates++
	if idx, ok := changes["order_index"].(int); ok {
		event.OrderIndex = idx
	}
	if idx, ok := changes["order_index"].(float64); ok {
		event.OrderIndex = int(idx)
	}
	return event, nil
}

func (m *mockContentRepo) DeleteTimelineEvent(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timeline, id)
	return nil
}

func (m *mockContentRepo) FindTimelineEventByTitle(_ context.Context, _ uuid.UUID, title string) (*models.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.timeline {
		if e.Title == title {
			return e, nil
		}
	}
	return nil, fmt.Errorf("timeline event %q not found", title)
}

func (m *mockContentRepo) ListMessages(_ context.Context) ([]*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	if m.failMessages {
		return nil, fmt.Errorf("permission denied for table %s", models.MessagesTable)
	}
	out := []*models.ContactMessage{}
	for _, msg := range m.messages {
		out = append(out, msg.Copy())
	}
	return out, nil
}

func (m *mockContentRepo) InsertMessage(_ context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	m.insertedMessages++
	stored := *msg
	m.messages[msg.ID] = &stored
	return &stored, nil
}

func (m *mockContentRepo) UpdateMessageStatus(_ context.Context, id uuid.UUID, status models.MessageStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return fmt.Errorf("no message found to update")
	}
	msg.Status = status
	return nil
}

func (m *mockContentRepo) DeleteMessage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, id)
	return nil
}

func (m *mockContentRepo) ListSettings(_ context.Context) (map[string]*models.SiteSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	settings := make(map[string]*models.SiteSetting, len(m.settings))
	for k, v := range m.settings {
		settings[k] = v.Copy()
	}
	return settings, nil
}

func (m *mockContentRepo) UpsertSetting(_ context.Context, setting *models.SiteSetting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[setting.Key] = setting
	return nil
}

func (m *mockContentRepo) DeleteSetting(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, key)
	return nil
}

func (m *mockContentRepo) CountRows(_ context.Context, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch table {
	case models.SkillsTable:
		return int64(len(m.skills)), nil
	case models.ProjectsTable:
		return int64(len(m.projects)), nil
	case models.CertificationsTable:
		return int64(len(m.certs)), nil
	case models.TimelineTable:
		return int64(len(m.timeline)), nil
	case models.MessagesTable:
		return int64(len(m.messages)), nil
	}
	return 0, fmt.Errorf("unknown table %s", table)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T, repo *mockContentRepo) *Store {
	t.Helper()
	s := New(repo, testLogger())
	t.Cleanup(s.Close)
	return s
}

func TestRefreshKeepsDefaultsWhenRemoteEmpty(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	s.Refresh(context.Background())

	snap := s.Snapshot()
	if snap.Profile == nil || snap.Profile.Name == "" {
		t.Fatal("expected default profile, got empty")
	}
	if len(snap.Skills) == 0 {
		t.Error("expected default skills for an empty remote store")
	}
	if len(snap.Projects) == 0 {
		t.Error("expected default projects for an empty remote store")
	}
	if len(snap.Certifications) == 0 {
		t.Error("expected default certifications for an empty remote store")
	}
	if snap.Settings == nil {
		t.Error("settings map must never be nil")
	}
	if snap.Timeline == nil || snap.Messages == nil {
		t.Error("timeline and messages must never be nil")
	}
}

func TestRefreshKeepsPreviousOnFailure(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	skill := &models.Skill{Name: "Rust", Category: "Programming Languages", Level: 65}
	if _, err := s.CreateSkill(context.Background(), skill); err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	s.Refresh(context.Background())

	repo.mu.Lock()
	repo.failAll = true
	repo.mu.Unlock()
	s.Refresh(context.Background())

	snap := s.Snapshot()
	found := false
	for _, got := range snap.Skills {
		if got.Name == "Rust" {
			found = true
		}
	}
	if !found {
		t.Error("a failed refresh must keep the previous snapshot slice")
	}
}

func TestCreateSkillAppearsImmediatelyAndRoundTrips(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	skill := &models.Skill{Name: "Rust", Category: "Programming Languages", Level: 65}
	created, err := s.CreateSkill(context.Background(), skill)
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}

	// optimistic: visible before any refetch
	snap := s.Snapshot()
	found := false
	for _, got := range snap.Skills {
		if got.Name == "Rust" && got.Level == 65 {
			found = true
		}
	}
	if !found {
		t.Fatal("created skill not visible in snapshot immediately")
	}

	if created.ID == uuid.Nil {
		t.Fatal("expected a server-assigned ID on the created skill")
	}

	// an independent fetch returns the same row
	s.Refresh(context.Background())
	snap = s.Snapshot()
	found = false
	for _, got := range snap.Skills {
		if got.ID == created.ID && got.Name == "Rust" {
			found = true
		}
	}
	if !found {
		t.Error("created skill missing after refetch")
	}

	// delete by the server-assigned ID removes it from the next snapshot
	if err := s.DeleteSkill(context.Background(), models.PersistedRef(created.ID)); err != nil {
		t.Fatalf("DeleteSkill failed: %v", err)
	}
	s.Refresh(context.Background())
	for _, got := range s.Snapshot().Skills {
		if got.ID == created.ID {
			t.Error("deleted skill still present after refetch")
		}
	}
}

func TestCreateSkillClampsLevel(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	created, err := s.CreateSkill(context.Background(), &models.Skill{
		Name:     "Overflow",
		Category: "Testing",
		Level:    150,
	})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	if created.Level != 100 {
		t.Errorf("expected level clamped to 100, got %d", created.Level)
	}

	created, err = s.CreateSkill(context.Background(), &models.Skill{
		Name:     "Underflow",
		Category: "Testing",
		Level:    -5,
	})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	if created.Level != 0 {
		t.Errorf("expected level clamped to 0, got %d", created.Level)
	}
}

func TestCreateSkillRejectsMissingFields(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	if _, err := s.CreateSkill(context.Background(), &models.Skill{Category: "Testing", Level: 10}); err == nil {
		t.Error("expected validation error for a skill without a name")
	}
	if len(repo.skills) != 0 {
		t.Error("invalid skill must not reach the remote store")
	}
}

func TestUpdateSkillResolvesPendingRef(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	if _, err := s.CreateSkill(context.Background(), &models.Skill{Name: "Go", Category: "Languages", Level: 70}); err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}

	// address the row by title, as the admin panel does before the refetch
	// delivers the server-assigned ID
	updated, err := s.UpdateSkill(context.Background(), models.PendingRef("Go"), map[string]interface{}{"level": 90})
	if err != nil {
		t.Fatalf("UpdateSkill by pending ref failed: %v", err)
	}
	if updated.Level != 90 {
		t.Errorf("expected level 90, got %d", updated.Level)
	}
}

func TestUpdateSkillFailureReturnsErrorAndReconciles(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	created, err := s.CreateSkill(context.Background(), &models.Skill{Name: "Go", Category: "Languages", Level: 70})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	s.Refresh(context.Background())

	repo.mu.Lock()
	repo.failSkillUpdate = true
	repo.mu.Unlock()

	if _, err := s.UpdateSkill(context.Background(), models.PersistedRef(created.ID), map[string]interface{}{"level": float64(10)}); err == nil {
		t.Fatal("expected error from failed remote write")
	}

	// the next refetch restores remote truth over the optimistic change
	repo.mu.Lock()
	repo.failSkillUpdate = false
	repo.mu.Unlock()
	s.Refresh(context.Background())
	for _, got := range s.Snapshot().Skills {
		if got.ID == created.ID && got.Level != 70 {
			t.Errorf("expected reconciled level 70, got %d", got.Level)
		}
	}
}

func TestSubmitMessageValidatesBeforeWrite(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	_, err := s.SubmitMessage(context.Background(), &models.ContactMessage{
		Name:    "Ada",
		Email:   "not-an-email",
		Subject: "Hello",
		Body:    "Hi there",
	})
	if err == nil {
		t.Fatal("expected validation error for malformed email")
	}
	if repo.insertedMessages != 0 {
		t.Error("invalid submission must not produce a remote write")
	}

	created, err := s.SubmitMessage(context.Background(), &models.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "Hi there",
	})
	if err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}
	if created.Status != models.MessageUnread {
		t.Errorf("new messages must default to unread, got %s", created.Status)
	}
}

func TestMessageStatusTransitions(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	created, err := s.SubmitMessage(context.Background(), &models.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "Hi there",
	})
	if err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	if err := s.SetMessageStatus(context.Background(), created.ID, models.MessageRead); err != nil {
		t.Fatalf("SetMessageStatus failed: %v", err)
	}
	// revert read -> unread is allowed
	if err := s.SetMessageStatus(context.Background(), created.ID, models.MessageUnread); err != nil {
		t.Fatalf("revert to unread failed: %v", err)
	}
	if err := s.SetMessageStatus(context.Background(), created.ID, "archived"); err == nil {
		t.Error("expected rejection of unknown status")
	}
}

func TestMoveTimelineEventSwapsOrderIndexes(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := s.CreateTimelineEvent(context.Background(), &models.TimelineEvent{
		Title:        "First Role",
		Organization: "Acme",
		StartDate:    start,
		Category:     models.TimelineWork,
		OrderIndex:   1,
	})
	if err != nil {
		t.Fatalf("CreateTimelineEvent failed: %v", err)
	}
	second, err := s.CreateTimelineEvent(context.Background(), &models.TimelineEvent{
		Title:        "Second Role",
		Organization: "Acme",
		StartDate:    start.AddDate(1, 0, 0),
		Category:     models.TimelineWork,
		OrderIndex:   2,
	})
	if err != nil {
		t.Fatalf("CreateTimelineEvent failed: %v", err)
	}

	if err := s.MoveTimelineEvent(context.Background(), models.PersistedRef(second.ID), "up"); err != nil {
		t.Fatalf("MoveTimelineEvent failed: %v", err)
	}

	if repo.timelineUpdates != 2 {
		t.Errorf("expected both rows written back, got %d updates", repo.timelineUpdates)
	}

	snap := s.Snapshot()
	if snap.Timeline[0].ID != second.ID || snap.Timeline[1].ID != first.ID {
		t.Error("expected the moved event to sort first")
	}

	if err := s.MoveTimelineEvent(context.Background(), models.PersistedRef(second.ID), "up"); err == nil {
		t.Error("expected error moving the top event further up")
	}
}

func TestCreateTimelineEventRejectsUnknownCategory(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	_, err := s.CreateTimelineEvent(context.Background(), &models.TimelineEvent{
		Title:        "Mystery",
		Organization: "Acme",
		StartDate:    time.Now(),
		Category:     "hobby",
	})
	if err == nil {
		t.Error("expected rejection of unknown timeline category")
	}
	if len(repo.timeline) != 0 {
		t.Error("invalid event must not reach the remote store")
	}
}

func TestSnapshotReadersIsolatedFromWrites(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	created, err := s.CreateSkill(context.Background(), &models.Skill{Name: "Go", Category: "Languages", Level: 65})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	s.Refresh(context.Background())

	before := s.Snapshot()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if _, err := json.Marshal(s.Snapshot().Skills); err != nil {
				t.Errorf("marshal failed: %v", err)
				return
			}
		}
	}()
	for i := 0; i < 100; i++ {
		if _, err := s.UpdateSkill(context.Background(), models.PersistedRef(created.ID), map[string]interface{}{"level": float64(i % 100)}); err != nil {
			t.Fatalf("UpdateSkill failed: %v", err)
		}
	}
	<-done

	// a clone taken before the writes never sees them
	for _, got := range before.Skills {
		if got.ID == created.ID && got.Level != 65 {
			t.Errorf("earlier snapshot mutated: level %d", got.Level)
		}
	}
}

func TestRefreshIsolatesSettingsFromMessagesFailure(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	repo.mu.Lock()
	repo.settings["site_title"] = &models.SiteSetting{
		Key:   "site_title",
		Value: json.RawMessage(`"Fresh Title"`),
	}
	repo.failMessages = true
	repo.mu.Unlock()

	s.Refresh(context.Background())

	snap := s.Snapshot()
	setting, ok := snap.Settings["site_title"]
	if !ok {
		t.Fatal("settings missing after refresh")
	}
	if string(setting.Value) != `"Fresh Title"` {
		t.Errorf("a failed messages fetch must not freeze settings: got %s", setting.Value)
	}
	if snap.Messages == nil {
		t.Error("messages must keep the previous slice on failure")
	}
}

func TestRefreshDropsRowsDeletedElsewhere(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	created, err := s.CreateSkill(context.Background(), &models.Skill{Name: "Rust", Category: "Languages", Level: 65})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	s.Refresh(context.Background())

	// another session deletes the only row; the change feed triggers a refetch
	repo.mu.Lock()
	delete(repo.skills, created.ID)
	repo.mu.Unlock()
	s.Refresh(context.Background())

	snap := s.Snapshot()
	for _, got := range snap.Skills {
		if got.ID == created.ID {
			t.Fatal("deleted row still served after refetch")
		}
	}
	if len(snap.Skills) == 0 {
		t.Error("an emptied table must fall back to the default content")
	}
}

func TestDashboardCounts(t *testing.T) {
	repo := newMockRepo()
	s := newTestStore(t, repo)

	if _, err := s.CreateSkill(context.Background(), &models.Skill{Name: "Go", Category: "Languages", Level: 70}); err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	if _, err := s.SubmitMessage(context.Background(), &models.ContactMessage{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Hello",
	}); err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	counts := s.DashboardCounts(context.Background())
	if counts[models.SkillsTable] != 1 {
		t.Errorf("expected 1 skill, got %d", counts[models.SkillsTable])
	}
	if counts["unread_messages"] != 1 {
		t.Errorf("expected 1 unread message, got %d", counts["unread_messages"])
	}
}
