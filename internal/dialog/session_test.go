package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionsSweep(t *testing.T) {
	s := NewSessions()
	now := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.begin(1, StateAwaitTime)
	s.begin(2, StateAwaitName)
	assert.Equal(t, 2, s.Len())

	// User 2 stays active; user 1 goes quiet.
	now = now.Add(20 * time.Minute)
	s.get(2)

	now = now.Add(15 * time.Minute)
	swept := s.Sweep(30 * time.Minute)
	assert.Equal(t, 1, swept)
	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.get(1))
	assert.NotNil(t, s.get(2))
}

func TestSessionsBeginReplaces(t *testing.T) {
	s := NewSessions()
	first := s.begin(1, StateAwaitTime)
	first.draft.Activity = "stale"

	second := s.begin(1, StateAwaitFrequency)
	assert.Equal(t, StateAwaitFrequency, second.state)
	assert.Empty(t, second.draft.Activity)
	assert.Equal(t, 1, s.Len())
}

func TestSessionsClear(t *testing.T) {
	s := NewSessions()
	s.begin(1, StateAwaitTime)
	s.clear(1)
	assert.Nil(t, s.get(1))
	// Clearing an absent session is harmless.
	s.clear(1)
}
