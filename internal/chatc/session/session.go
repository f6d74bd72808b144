package session

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	// Prefix is prepended to every session identifier.
	Prefix = "session_"

	suffixLen = 9
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Session represents one run of the chat client
type Session struct {
	ID        string    `json:"id"` // e.g. "session_1729180000000_k3j9x0a1b"
	StartedAt time.Time `json:"started_at"`
}

// Generator builds session identifiers.
// The zero value uses the wall clock and the global random source.
type Generator struct {
	Now  func() time.Time
	Rand *rand.Rand
}

// NewID returns prefix + Unix milliseconds + "_" + a random base-36 suffix.
// Identifiers are collision-improbable but not cryptographically secure; they only
// correlate requests on the backend.
func (g Generator) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	intN := rand.IntN
	if g.Rand != nil {
		intN = g.Rand.IntN
	}

	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteString(strconv.FormatInt(now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(alphabet[intN(len(alphabet))])
	}
	return b.String()
}

// NewID returns a new session identifier using the default generator.
func NewID() string {
	return Generator{}.NewID()
}

// New creates a new session. It is called once per run, before any exchange.
func New() *Session {
	return NewWithGenerator(Generator{})
}

// NewWithGenerator creates a new session whose ID comes from g.
func NewWithGenerator(g Generator) *Session {
	startedAt := time.Now()
	if g.Now != nil {
		startedAt = g.Now()
	}
	return &Session{
		ID:        g.NewID(),
		StartedAt: startedAt,
	}
}

// GetShortID returns the random suffix of the session ID
func (s *Session) GetShortID() string {
	if i := strings.LastIndexByte(s.ID, '_'); i >= 0 && i < len(s.ID)-1 {
		return s.ID[i+1:]
	}
	return s.ID
}
