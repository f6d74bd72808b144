// Package chatc provides the core types shared by the chat client.
// It defines the Message exchanged with a chat backend and the Backend interface
// that transport implementations (httpchat, test doubles) must satisfy.
package chatc

import (
	"context"
	"fmt"
	"strings"
)

// ApologyText is the assistant message shown in place of a reply whenever an exchange fails.
const ApologyText = "Sorry, I encountered an error. Please try again."

// Backend defines the interface for chat backends.
//
// Example usage:
//
//	backend := httpchat.New(cfg)
//	reply, err := backend.Chat(ctx, store.Messages(), sess.ID)
type Backend interface {
	// Chat sends the full conversation history together with the session identifier
	// and returns the backend's reply text.
	Chat(ctx context.Context, messages []Message, sessionID string) (string, error)
}

// BackendFunc adapts an ordinary function to the Backend interface.
type BackendFunc func(ctx context.Context, messages []Message, sessionID string) (string, error)

// Chat calls f(ctx, messages, sessionID).
func (f BackendFunc) Chat(ctx context.Context, messages []Message, sessionID string) (string, error) {
	return f(ctx, messages, sessionID)
}

// ParseRole parses a role name. Matching is case-insensitive and ignores surrounding whitespace.
//
// Example:
//
//	role, err := ParseRole("Assistant")
//	// role = RoleAssistant
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("invalid role: %q (expected %q or %q)", s, RoleUser, RoleAssistant)
	}
}
