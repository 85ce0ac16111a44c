package dialog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// State enumerates the dialog positions. Each state admits exactly one
// kind of input: a token from the option set it presented, or free text.
type State int

const (
	StateIdle             State = iota
	StateAwaitEligibility       // select: yes / no
	StateAwaitTime              // select from slot grid (arrives as text)
	StateAwaitName              // free text
	StateAwaitDuration          // select from duration list (arrives as text)
	StateAwaitFrequency         // select weekdays until Done
	StateAwaitFieldChoice       // select field to edit
	StateAwaitNewTime
	StateAwaitNewDuration
	StateAwaitNewName
	StateAwaitNewFrequency
)

// session is one user's in-flight dialog scratch state. It never
// touches the persisted store; only a terminal transition does.
type session struct {
	state   State
	draft   domain.Draft
	entryID int64 // edit target, when set
	touched time.Time
}

// Sessions keys volatile dialog state by chat id. State is process
// local and is not restored across restarts. Abandoned dialogs are
// reaped by Run after a generous TTL so they do not pile up for the
// life of the process.
type Sessions struct {
	mu  sync.Mutex
	m   map[int64]*session
	now func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]*session), now: time.Now}
}

// get returns the live session for a chat, or nil.
func (s *Sessions) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.m[chatID]
	if sess != nil {
		sess.touched = s.now()
	}
	return sess
}

// begin replaces any existing session with a fresh one in the given state.
func (s *Sessions) begin(chatID int64, st State) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &session{state: st, touched: s.now()}
	s.m[chatID] = sess
	return sess
}

// clear drops a chat's session, returning the machine to Idle.
func (s *Sessions) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Sweep removes sessions idle longer than ttl and reports how many.
func (s *Sessions) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	n := 0
	for id, sess := range s.m {
		if sess.touched.Before(cutoff) {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions once a minute until ctx is canceled.
func (s *Sessions) Run(ctx context.Context, ttl time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("session sweeper stopping")
			return
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 {
				log.Debug("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}
