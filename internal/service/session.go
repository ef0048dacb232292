package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// ErrSubmissionInFlight rejects a submission while the same session still
// has one pending.
var ErrSubmissionInFlight = apperrors.NewConflict(
	"SUBMISSION_IN_FLIGHT",
	"a submission is already in progress for this session",
	nil,
)

// Session is one submission pipeline. At most one Submit runs at a time;
// concurrent attempts are rejected, not queued.
type Session struct {
	id       string
	store    *TicketStore
	busy     atomic.Bool
	lastSeen time.Time // guarded by TicketStore.sessionsMu
}

// Session returns the pipeline for id, creating it on first use. Sessions
// idle for longer than the store's session TTL are evicted lazily; a busy
// session is never evicted.
func (s *TicketStore) Session(id string) *Session {
	now := s.clock.Now()
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sweepSessionsLocked(now)

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{id: id, store: s}
		s.sessions[id] = session
	}
	session.lastSeen = now
	return session
}

// SessionCount returns the number of tracked sessions.
func (s *TicketStore) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

func (s *TicketStore) sweepSessionsLocked(now time.Time) {
	if s.sessionTTL <= 0 || now.Sub(s.lastSweep) < s.sessionTTL {
		return
	}
	s.lastSweep = now
	for id, session := range s.sessions {
		if !session.Busy() && now.Sub(session.lastSeen) > s.sessionTTL {
			delete(s.sessions, id)
		}
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Busy reports whether a submission is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// Submit forwards to TicketStore.Submit behind the busy gate. Invalid input
// is reported before the gate is consulted.
func (s *Session) Submit(ctx context.Context, text, user string) (domain.Ticket, error) {
	if err := validateSubmission(text, user); err != nil {
		return domain.Ticket{}, err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return domain.Ticket{}, ErrSubmissionInFlight
	}
	defer s.busy.Store(false)
	return s.store.Submit(ctx, text, user)
}
