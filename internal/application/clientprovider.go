// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// sessionClients holds the authenticated clients owned by one session.
type sessionClients struct {
	video    driven.VideoPlatform
	forum    driven.ForumPlatform
	lastSeen atomic.Int64 // Unix nanoseconds of the last lookup or store.
}

// SessionRegistry maps session ids to their authenticated platform clients.
// Clients are created by AuthService.Connect and live until Disconnect or
// until the session goes idle and is swept; they are never persisted.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionClients
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionClients),
		now:      time.Now,
	}
}

// Video returns the session's video client, or nil if not connected.
func (r *SessionRegistry) Video(sessionID string) driven.VideoPlatform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[sessionID]; ok {
		r.touch(s)
		return s.video
	}
	return nil
}

// Forum returns the session's forum client, or nil if not connected.
func (r *SessionRegistry) Forum(sessionID string) driven.ForumPlatform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[sessionID]; ok {
		r.touch(s)
		return s.forum
	}
	return nil
}

// SetVideo stores (or with nil, clears) the session's video client.
func (r *SessionRegistry) SetVideo(sessionID string, client driven.VideoPlatform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(sessionID).video = client
	r.pruneLocked(sessionID)
}

// SetForum stores (or with nil, clears) the session's forum client.
func (r *SessionRegistry) SetForum(sessionID string, client driven.ForumPlatform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(sessionID).forum = client
	r.pruneLocked(sessionID)
}

// Len returns the number of sessions holding at least one client.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SweepIdle drops every session not used within maxIdle and returns how
// many were dropped.
func (r *SessionRegistry) SweepIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	swept := 0
	for id, s := range r.sessions {
		if s.lastSeen.Load() < cutoff {
			delete(r.sessions, id)
			swept++
		}
	}
	return swept
}

// RunSweeper calls SweepIdle every interval until ctx is canceled. Sessions
// idle longer than the session cookie lifetime can never be used again.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := r.SweepIdle(maxIdle); n > 0 {
				logger.Info("swept idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}

func (r *SessionRegistry) touch(s *sessionClients) {
	s.lastSeen.Store(r.now().UnixNano())
}

func (r *SessionRegistry) entry(sessionID string) *sessionClients {
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &sessionClients{}
		r.sessions[sessionID] = s
	}
	r.touch(s)
	return s
}

func (r *SessionRegistry) pruneLocked(sessionID string) {
	if s := r.sessions[sessionID]; s != nil && s.video == nil && s.forum == nil {
		delete(r.sessions, sessionID)
	}
}
