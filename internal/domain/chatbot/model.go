package chatbot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("Message is required")

// Conversation is one stored message/response exchange.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Kind      string    `json:"kind"`
	Keyword   *string   `json:"keyword,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AskRequest is the body of POST /api/chatbot and of each websocket frame.
type AskRequest struct {
	Message string `json:"message"`
}
