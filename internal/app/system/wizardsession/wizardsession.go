// Package wizardsession identifies each browser's wizard run with an
// anonymous cookie session and keeps the live wizard aggregates in an
// in-memory registry. There are no users or logins; the cookie only pins
// a browser to its own upload.
package wizardsession

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/domain/wizard"
)

const sessionIDKey = "wizard_id"

type ctxKey string

const currentSessionKey ctxKey = "wizardSession"

// Manager issues and resolves wizard session ids via a signed cookie.
type Manager struct {
	store    *sessions.CookieStore
	name     string
	registry *Registry
	log      *zap.Logger
}

// NewManager builds the cookie store and registry.
//
// In production (secure=true) cookies are Secure with SameSite=None so the
// SPA can call the API cross-site over HTTPS; in dev Lax over plain HTTP.
func NewManager(sessionKey, cookieName, domain string, secure bool, registry *Registry, logger *zap.Logger) (*Manager, error) {
	key := []byte(sessionKey)
	if sessionKey == "" {
		// Ephemeral key: fine for dev, but cookies die with the process.
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("generating session key failed")
		}
		logger.Warn("no session key configured; using an ephemeral random key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("wizard session store initialized",
		zap.Bool("secure", secure),
		zap.String("cookie", cookieName))

	return &Manager{store: store, name: cookieName, registry: registry, log: logger}, nil
}

// Registry returns the manager's live-session registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// LoadSession is middleware that resolves (or mints) the caller's wizard
// session and injects it into the request context. Every wizard and data
// endpoint sits behind it.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		id, _ := sess.Values[sessionIDKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("saving wizard session cookie failed", zap.Error(err))
			}
		}

		ws := m.registry.Get(id)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), currentSessionKey, ws)))
	})
}

// FromRequest returns the wizard session placed in context by LoadSession.
func FromRequest(r *http.Request) (*wizard.Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(*wizard.Session)
	return s, ok
}

// WithTestSession injects a wizard session into the request context,
// bypassing the cookie round-trip. Test helper only.
func WithTestSession(r *http.Request, s *wizard.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}
