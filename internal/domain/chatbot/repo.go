package chatbot

import (
	"context"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Conversation, int, error)
}
