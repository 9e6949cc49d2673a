package wizardsession

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/domain/wizard"
)

// Registry owns the live wizard aggregates, one per session id, and
// expires the ones nobody has touched in a while.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*wizard.Session

	log      *zap.Logger
	interval time.Duration
	maxIdle  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewRegistry creates a registry whose sweep loop runs every interval and
// drops sessions idle longer than maxIdle.
func NewRegistry(logger *zap.Logger, interval, maxIdle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*wizard.Session),
		log:      logger,
		interval: interval,
		maxIdle:  maxIdle,
		stopCh:   make(chan struct{}),
	}
}

// Get returns the wizard session for id, creating a fresh one at the
// upload step on first sight.
func (r *Registry) Get(id string) *wizard.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := wizard.NewSession(id)
	r.sessions[id] = s
	return s
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Start begins the background idle-expiry loop.
func (r *Registry) Start() {
	r.wg.Add(1)
	go r.run()
	r.log.Info("wizard session sweep started",
		zap.Duration("interval", r.interval),
		zap.Duration("max_idle", r.maxIdle))
}

// Stop signals the sweep loop to stop and waits for it to finish.
func (r *Registry) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	r.log.Info("wizard session sweep stopped")
}

func (r *Registry) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Sweep(time.Now())
		}
	}
}

// Sweep drops every session idle since before now-maxIdle and returns how
// many were removed. Exported so tests can drive it without the ticker.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("expired idle wizard sessions", zap.Int("count", removed))
	}
	return removed
}
