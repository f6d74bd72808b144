// Package exchange orchestrates one request/response cycle per user submission.
//
// A Controller appends the user's message, asks the backend for a reply using the
// full conversation, and appends exactly one assistant message: the reply, or
// chatc.ApologyText when anything goes wrong. Failures are reported to the logger
// and never returned to the caller.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/conversation"
	"go.uber.org/zap"
)

// ErrExchangeFailed is the single failure class of an exchange. Transport errors,
// non-success statuses and malformed replies are all wrapped with it.
var ErrExchangeFailed = errors.New("exchange failed")

// Controller drives exchanges for a single session.
// It assumes at most one Submit is in flight at a time; the caller gates input while
// Pending reports true.
type Controller struct {
	backend   chatc.Backend
	store     *conversation.Store
	sessionID string
	logger    *zap.Logger

	pending atomic.Bool

	mu        sync.Mutex
	observers []func(bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller that appends to store and talks to backend.
// sessionID is sent unchanged with every request.
func New(backend chatc.Backend, store *conversation.Store, sessionID string, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		store:     store,
		sessionID: sessionID,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the identifier sent with every request
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Conversation returns the store this controller appends to
func (c *Controller) Conversation() *conversation.Store {
	return c.store
}

// Pending reports whether a request is currently outstanding.
func (c *Controller) Pending() bool {
	return c.pending.Load()
}

// OnPending registers fn to be called every time the pending flag changes.
func (c *Controller) OnPending(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Submit runs one exchange for text.
//
// Empty or whitespace-only text is ignored and ok is false. Otherwise the returned
// message is the assistant message that was appended.
func (c *Controller) Submit(ctx context.Context, text string) (reply chatc.Message, ok bool) {
	if !c.store.AppendUser(text) {
		return chatc.Message{}, false
	}

	c.setPending(true)
	defer c.setPending(false)

	history := c.store.Messages()
	start := time.Now()

	replyText, err := c.call(ctx, history)
	if err != nil {
		c.logger.Error("exchange failed",
			zap.String("session_id", c.sessionID),
			zap.Int("messages", len(history)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		replyText = chatc.ApologyText
	} else {
		c.logger.Debug("exchange completed",
			zap.String("session_id", c.sessionID),
			zap.Int("messages", len(history)),
			zap.Duration("elapsed", time.Since(start)))
	}

	c.store.AppendAssistant(replyText)
	return chatc.AssistantMessage(replyText), true
}

// call invokes the backend once, converting a panic into an error so that the
// conversation still receives its assistant message.
func (c *Controller) call(ctx context.Context, history []chatc.Message) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: backend panic: %v", ErrExchangeFailed, r)
		}
	}()

	reply, err = c.backend.Chat(ctx, history, c.sessionID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	return reply, nil
}

func (c *Controller) setPending(v bool) {
	c.pending.Store(v)

	c.mu.Lock()
	observers := make([]func(bool), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}
