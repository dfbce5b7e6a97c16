// Package session binds a browser to an operator workspace. The cookie only
// carries the workspace id; the workspace itself stays in memory.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const workspaceKey = "workspace_id"

type Closer interface {
	Close()
}

type entry[W Closer] struct {
	workspace W
	lastSeen  time.Time
}

// Manager owns every live workspace. Workspaces idle for longer than ttl are
// closed by Sweep.
type Manager[W Closer] struct {
	store   sessions.Store
	name    string
	ttl     time.Duration
	factory func(id uuid.UUID) W
	now     func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]*entry[W]
}

func NewManager[W Closer](store sessions.Store, name string, ttl time.Duration, factory func(uuid.UUID) W) *Manager[W] {
	return &Manager[W]{
		store:   store,
		name:    name,
		ttl:     ttl,
		factory: factory,
		now:     time.Now,
		entries: make(map[uuid.UUID]*entry[W]),
	}
}

// Resolve returns the workspace bound to the request, creating a fresh one
// (and setting the cookie) when the cookie is missing, invalid or expired.
func (m *Manager[W]) Resolve(w http.ResponseWriter, r *http.Request) (W, error) {
	const op = "session.Resolve"

	// A cookie that fails to decode still yields a usable new session.
	sess, err := m.store.Get(r, m.name)
	if sess == nil {
		var zero W
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	if err != nil {
		logger.Debug(r.Context(), "discard session cookie", logger.ErrorF(err))
	}

	if id, ok := workspaceID(sess); ok {
		m.mu.Lock()
		e, found := m.entries[id]
		if found {
			e.lastSeen = m.now()
		}
		m.mu.Unlock()

		if found {
			return e.workspace, nil
		}
	}

	id := uuid.New()
	ws := m.factory(id)

	sess.Values[workspaceKey] = id.String()
	if err := sess.Save(r, w); err != nil {
		ws.Close()
		var zero W
		return zero, fmt.Errorf("%s: save session: %w", op, err)
	}

	m.mu.Lock()
	m.entries[id] = &entry[W]{workspace: ws, lastSeen: m.now()}
	m.mu.Unlock()

	logger.Info(r.Context(), "workspace opened", logger.String("workspace_id", id.String()))
	return ws, nil
}

// Drop closes the request's workspace and expires its cookie.
func (m *Manager[W]) Drop(w http.ResponseWriter, r *http.Request) error {
	const op = "session.Drop"

	sess, err := m.store.Get(r, m.name)
	if sess == nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if id, ok := workspaceID(sess); ok {
		m.mu.Lock()
		e, found := m.entries[id]
		delete(m.entries, id)
		m.mu.Unlock()

		if found {
			e.workspace.Close()
		}
	}

	delete(sess.Values, workspaceKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Sweep closes workspaces idle for longer than the ttl and reports how many.
func (m *Manager[W]) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var idle []W
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.workspace)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()

	for _, ws := range idle {
		ws.Close()
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (m *Manager[W]) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Info(ctx, "idle workspaces closed", logger.Int("count", n))
			}
		}
	}
}

// Close closes every workspace.
func (m *Manager[W]) Close(_ context.Context) error {
	m.mu.Lock()
	all := make([]W, 0, len(m.entries))
	for id, e := range m.entries {
		all = append(all, e.workspace)
		delete(m.entries, id)
	}
	m.mu.Unlock()

	for _, ws := range all {
		ws.Close()
	}
	return nil
}

func (m *Manager[W]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

func workspaceID(sess *sessions.Session) (uuid.UUID, bool) {
	raw, ok := sess.Values[workspaceKey].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
