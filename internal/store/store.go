package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/feed"
	"github.com/joshua-takyi/portfolio/internal/models"
)

const (
	// DebounceWindow coalesces change-feed notifications before a refetch.
	DebounceWindow = time.Second

	refreshTimeout = 15 * time.Second
)

// Store is the in-memory mirror of the portfolio content tables. Reads are
// served from the snapshot; mutations apply locally first and then write
// through to the remote store. Change-feed notifications trigger a debounced
// full refetch, so other sessions' writes show up without a reload.
type Store struct {
	repo   models.ContentRepo
	logger *slog.Logger

	mu   sync.RWMutex
	snap *models.Snapshot

	debouncer *feed.Debouncer
}

func New(repo models.ContentRepo, logger *slog.Logger) *Store {
	s := &Store{
		repo:   repo,
		logger: logger,
		snap:   models.DefaultSnapshot(),
	}
	s.debouncer = feed.NewDebouncer(DebounceWindow, s.refreshNow)
	return s
}

// Snapshot returns a copy safe for concurrent readers.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// OwnerID is the profile row's ID; new content rows are assigned to it.
func (s *Store) OwnerID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.Profile == nil {
		return uuid.Nil
	}
	return s.snap.Profile.ID
}

// NotifyChange is the change-feed callback. Any event on any watched table
// schedules one coarse refetch; no incremental patching.
func (s *Store) NotifyChange(ev feed.Event) {
	s.logger.Debug("change notification", "table", ev.Table, "type", ev.Type)
	s.debouncer.Trigger()
}

// ScheduleRefresh requests a debounced refetch, used after remote writes to
// reconcile the optimistic snapshot with remote truth.
func (s *Store) ScheduleRefresh() {
	s.debouncer.Trigger()
}

// Close stops the debounce timer. The feed listener is owned by the caller.
func (s *Store) Close() {
	s.debouncer.Stop()
}

func (s *Store) refreshNow() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	s.Refresh(ctx)
}

// Refresh fetches every content table in parallel and swaps in a new
// snapshot. A failed table read keeps that slice at its previous value; a
// successful read that comes back empty reverts to the hardcoded defaults, so
// a row deleted from another session disappears here too. The load as a whole
// always completes and never leaves a field undefined.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.RLock()
	next := s.snap.Clone()
	s.mu.RUnlock()

	var (
		wg    sync.WaitGroup
		links map[string]string
	)

	wg.Add(8)

	go func() {
		defer wg.Done()
		profile, err := s.repo.GetProfile(ctx)
		if err != nil {
			s.logger.Warn("profile fetch failed, keeping previous", "error", err)
			return
		}
		profile.SocialLinks = next.Profile.SocialLinks
		next.Profile = profile
	}()

	go func() {
		defer wg.Done()
		fetched, err := s.repo.ListSocialLinks(ctx, uuid.Nil)
		if err != nil {
			s.logger.Warn("social links fetch failed, keeping previous", "error", err)
			return
		}
		links = fetched
	}()

	go func() {
		defer wg.Done()
		skills, err := s.repo.ListSkills(ctx)
		if err != nil {
			s.logger.Warn("skills fetch failed, keeping previous", "error", err)
			return
		}
		if len(skills) == 0 {
			skills = models.DefaultSkills()
		}
		next.Skills = skills
	}()

	go func() {
		defer wg.Done()
		projects, err := s.repo.ListProjects(ctx)
		if err != nil {
			s.logger.Warn("projects fetch failed, keeping previous", "error", err)
			return
		}
		if len(projects) == 0 {
			projects = models.DefaultProjects()
		}
		next.Projects = projects
	}()

	go func() {
		defer wg.Done()
		certs, err := s.repo.ListCertifications(ctx)
		if err != nil {
			s.logger.Warn("certifications fetch failed, keeping previous", "error", err)
			return
		}
		if len(certs) == 0 {
			certs = models.DefaultCertifications()
		}
		next.Certifications = certs
	}()

	go func() {
		defer wg.Done()
		events, err := s.repo.ListTimeline(ctx)
		if err != nil {
			s.logger.Warn("timeline fetch failed, keeping previous", "error", err)
			return
		}
		next.Timeline = events
	}()

	go func() {
		defer wg.Done()
		messages, err := s.repo.ListMessages(ctx)
		if err != nil {
			s.logger.Warn("messages fetch failed, keeping previous", "error", err)
			return
		}
		next.Messages = messages
	}()

	go func() {
		defer wg.Done()
		settings, err := s.repo.ListSettings(ctx)
		if err != nil {
			s.logger.Warn("settings fetch failed, keeping previous", "error", err)
			return
		}
		if len(settings) == 0 {
			settings = models.DefaultSettings()
		}
		next.Settings = settings
	}()

	wg.Wait()

	if len(links) > 0 {
		next.Profile.SocialLinks = links
	}
	next.FetchedAt = time.Now()

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.logger.Debug("snapshot refreshed",
		"skills", len(next.Skills),
		"projects", len(next.Projects),
		"timeline", len(next.Timeline),
		"messages", len(next.Messages),
	)
}

// DashboardCounts runs the per-table counting queries behind the admin
// overview, falling back to snapshot lengths when a count fails.
func (s *Store) DashboardCounts(ctx context.Context) map[string]int64 {
	snap := s.Snapshot()

	counts := map[string]int64{
		models.SkillsTable:         int64(len(snap.Skills)),
		models.ProjectsTable:       int64(len(snap.Projects)),
		models.CertificationsTable: int64(len(snap.Certifications)),
		models.TimelineTable:       int64(len(snap.Timeline)),
		models.MessagesTable:       int64(len(snap.Messages)),
	}

	for table := range counts {
		n, err := s.repo.CountRows(ctx, table)
		if err != nil {
			s.logger.Warn("count query failed, using snapshot length", "table", table, "error", err)
			continue
		}
		counts[table] = n
	}

	var unread int64
	for _, msg := range snap.Messages {
		if msg.Status == models.MessageUnread {
			unread++
		}
	}
	counts["unread_messages"] = unread

	return counts
}
