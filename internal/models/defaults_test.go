package models

import "testing"

func TestDefaultSnapshotIsFullyPopulated(t *testing.T) {
	snap := DefaultSnapshot()

	if snap.Profile == nil || snap.Profile.Name == "" || snap.Profile.Bio == "" {
		t.Error("default profile must carry placeholder text")
	}
	if len(snap.Profile.SocialLinks) == 0 {
		t.Error("default profile must carry social links")
	}
	if len(snap.Skills) == 0 || len(snap.Projects) == 0 || len(snap.Certifications) == 0 {
		t.Error("default content sections must not be empty")
	}
	if snap.Timeline == nil || snap.Messages == nil || snap.Settings == nil {
		t.Error("no snapshot field may be nil")
	}

	for _, skill := range snap.Skills {
		if skill.Level < 0 || skill.Level > 100 {
			t.Errorf("default skill %q has out-of-range level %d", skill.Name, skill.Level)
		}
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	snap := DefaultSnapshot()
	clone := snap.Clone()

	clone.Skills = append(clone.Skills, &Skill{Name: "Zig", Category: "Languages", Level: 10})
	clone.Profile.SocialLinks["mastodon"] = "https://example.social"

	if len(snap.Skills) == len(clone.Skills) {
		t.Error("appending to a clone must not grow the original")
	}
	if _, ok := snap.Profile.SocialLinks["mastodon"]; ok {
		t.Error("clone must deep-copy the social links map")
	}
}

func TestSkillClampLevel(t *testing.T) {
	s := &Skill{Level: 150}
	s.ClampLevel()
	if s.Level != 100 {
		t.Errorf("got %d, want 100", s.Level)
	}

	s.Level = -1
	s.ClampLevel()
	if s.Level != 0 {
		t.Errorf("got %d, want 0", s.Level)
	}
}

func TestMessageStatusValid(t *testing.T) {
	for _, status := range []MessageStatus{MessageUnread, MessageRead, MessageReplied} {
		if !status.Valid() {
			t.Errorf("status %q should be valid", status)
		}
	}
	if MessageStatus("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}
