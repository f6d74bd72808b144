// Package conversation holds the in-memory, append-only message history of a run.
package conversation

import (
	"strings"
	"sync"

	"github.com/longkey1/chatc/internal/chatc"
)

// Store is an append-only, ordered sequence of messages.
// Messages are never reordered, edited, or removed.
type Store struct {
	mu          sync.RWMutex
	messages    []chatc.Message
	subscribers map[int]func([]chatc.Message)
	nextID      int
}

// NewStore creates an empty conversation
func NewStore() *Store {
	return &Store{
		messages:    []chatc.Message{},
		subscribers: make(map[int]func([]chatc.Message)),
	}
}

// AppendUser appends a user message. It is a no-op returning false when the
// trimmed text is empty. The text is stored as given, untrimmed.
func (s *Store) AppendUser(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.append(chatc.UserMessage(text))
	return true
}

// AppendAssistant appends an assistant message
func (s *Store) AppendAssistant(text string) {
	s.append(chatc.AssistantMessage(text))
}

// Messages returns a copy of the full ordered sequence
func (s *Store) Messages() []chatc.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of messages in the conversation
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Subscribe registers fn to be called with a snapshot after every append.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func([]chatc.Message)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) append(msg chatc.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	snapshot := s.snapshot()
	subscribers := make([]func([]chatc.Message), 0, len(s.subscribers))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	s.mu.Unlock()

	// Notify outside the lock so subscribers may read the store
	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// snapshot copies the messages; callers must hold mu.
func (s *Store) snapshot() []chatc.Message {
	out := make([]chatc.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
