// Package memory holds the bounded per-user conversation history used for
// prompt assembly and referential follow-up resolution.
package memory

import (
	"hash/fnv"
	"sync"
	"time"
)

// Role marks which side of the conversation produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation window.
type Turn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// DefaultCapacity is the per-user window cap. Oldest turns are evicted
// first once the cap is exceeded.
const DefaultCapacity = 20

const shardCount = 16

// Store is a sharded per-user turn store. Windows are created lazily on
// first append and live for the process lifetime. Shards keep users from
// contending on a single lock.
type Store struct {
	capacity int
	shards   [shardCount]shard
}

type shard struct {
	mu      sync.RWMutex
	windows map[string][]Turn
}

// NewStore creates a Store with the given window capacity; values <= 0
// fall back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{capacity: capacity}
	for i := range s.shards {
		s.shards[i].windows = make(map[string][]Turn)
	}
	return s
}

func (s *Store) shardFor(userID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.shards[h.Sum32()%shardCount]
}

// Append pushes a turn onto the user's window, evicting the oldest turn
// when the window exceeds capacity.
func (s *Store) Append(userID string, turn Turn) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	window := append(sh.windows[userID], turn)
	if len(window) > s.capacity {
		window = window[len(window)-s.capacity:]
	}
	sh.windows[userID] = window
}

// Recent returns a copy of the last n turns in chronological order.
func (s *Store) Recent(userID string, n int) []Turn {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	window := sh.windows[userID]
	if n <= 0 || n > len(window) {
		n = len(window)
	}
	out := make([]Turn, n)
	copy(out, window[len(window)-n:])
	return out
}

// LastUserText scans backward from the most recent turn for user text,
// skipping turns for which skip returns true. The skip predicate lets a
// referential follow-up exclude its own phrasing when looking for the
// utterance it refers to.
func (s *Store) LastUserText(userID string, skip func(text string) bool) (string, bool) {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	window := sh.windows[userID]
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role != RoleUser {
			continue
		}
		if skip != nil && skip(window[i].Text) {
			continue
		}
		return window[i].Text, true
	}
	return "", false
}

// LastAssistantText returns the most recent assistant turn text.
func (s *Store) LastAssistantText(userID string) (string, bool) {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	window := sh.windows[userID]
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role == RoleAssistant {
			return window[i].Text, true
		}
	}
	return "", false
}

// Len returns the current window length for a user.
func (s *Store) Len(userID string) int {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.windows[userID])
}
