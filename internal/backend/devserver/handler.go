package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/longkey1/chatc/internal/chatc"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

// ChatRequest is the payload accepted by the chat endpoint
type ChatRequest struct {
	Messages  []chatc.Message `json:"messages"`
	SessionID string          `json:"sessionId"`
}

// ChatResponse is the reply returned by the chat endpoint
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError describes a rejected request
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Replier produces the assistant reply for a validated conversation.
type Replier interface {
	Reply(ctx context.Context, messages []chatc.Message, sessionID string) (string, error)
}

// EchoReplier answers with the text of the last user message.
type EchoReplier struct {
	Prefix string
}

// Reply implements Replier
func (e EchoReplier) Reply(ctx context.Context, messages []chatc.Message, sessionID string) (string, error) {
	return e.Prefix + messages[len(messages)-1].Text, nil
}

// ChatHandler serves POST /api/chat
type ChatHandler struct {
	replier Replier
	logger  *zap.Logger
}

// NewChatHandler creates a chat handler backed by replier
func NewChatHandler(replier Replier, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{
		replier: replier,
		logger:  logger,
	}
}

// HandleChat validates the conversation and writes the reply
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if msg := validate(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", msg, r))
		return
	}

	log := h.logger.With(
		zap.String("session_id", req.SessionID),
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.Int("messages", len(req.Messages)),
	)

	reply, err := h.replier.Reply(r.Context(), req.Messages, req.SessionID)
	if err != nil {
		log.Error("Failed to produce reply", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("REPLY_ERROR", "Failed to produce reply", r))
		return
	}

	log.Info("Replied to chat request")
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// validate returns a user-facing problem description, or "" when req is acceptable.
// Roles in req.Messages are rewritten to their canonical form.
func validate(req ChatRequest) string {
	if strings.TrimSpace(req.SessionID) == "" {
		return "sessionId is required"
	}
	if len(req.Messages) == 0 {
		return "messages must not be empty"
	}
	for i, m := range req.Messages {
		role, err := chatc.ParseRole(string(m.Role))
		if err != nil {
			return "messages contain an invalid role"
		}
		// Store the canonical role so later checks and the replier see one spelling
		req.Messages[i].Role = role
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != chatc.RoleUser {
		return "last message must come from the user"
	}
	if strings.TrimSpace(last.Text) == "" {
		return "last message must not be empty"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) ErrorResponse {
	return ErrorResponse{
		Error: APIError{
			Code:      code,
			Message:   message,
			RequestID: chimiddleware.GetReqID(r.Context()),
		},
	}
}
