// Package transcript writes a read-only record of a conversation to disk.
//
// Transcripts are an export: they are listed and shown by the CLI but never loaded
// back into a running conversation.
package transcript

import (
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/session"
)

// Transcript represents a saved conversation
type Transcript struct {
	SessionID  string          `json:"session_id"`
	BackendURL string          `json:"backend_url"`
	StartedAt  time.Time       `json:"started_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Messages   []chatc.Message `json:"messages"`
}

// New creates a transcript snapshot for sess
func New(sess *session.Session, backendURL string, messages []chatc.Message) *Transcript {
	if messages == nil {
		messages = []chatc.Message{}
	}
	return &Transcript{
		SessionID:  sess.ID,
		BackendURL: backendURL,
		StartedAt:  sess.StartedAt,
		UpdatedAt:  time.Now(),
		Messages:   messages,
	}
}

// GetShortID returns the random suffix of the session ID
func (t *Transcript) GetShortID() string {
	return (&session.Session{ID: t.SessionID}).GetShortID()
}

// MessageCount returns the number of messages in the transcript
func (t *Transcript) MessageCount() int {
	return len(t.Messages)
}
