package wizardsession

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRegistry_GetCreatesAndReuses(t *testing.T) {
	r := NewRegistry(zap.NewNop(), time.Minute, time.Hour)
	a := r.Get("one")
	b := r.Get("one")
	if a != b {
		t.Error("Get minted a second session for the same id")
	}
	if r.Get("two") == a {
		t.Error("different ids shared a session")
	}
	if r.Len() != 2 {
		t.Errorf("Len: got %d, want 2", r.Len())
	}
}

func TestRegistry_SweepExpiresIdleSessions(t *testing.T) {
	r := NewRegistry(zap.NewNop(), time.Minute, 30*time.Minute)
	r.Get("stale")
	time.Sleep(10 * time.Millisecond)
	freshAt := r.Get("fresh").LastActive()

	// Sweep at a time that puts the cutoff between the two sessions'
	// last activity.
	removed := r.Sweep(freshAt.Add(30 * time.Minute))
	if removed != 1 {
		t.Fatalf("removed %d sessions, want 1", removed)
	}
	if r.Len() != 1 {
		t.Errorf("Len after sweep: got %d, want 1", r.Len())
	}
}
