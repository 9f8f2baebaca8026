package chatbot

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/metrics"
)

type Service struct {
	responder *Responder
	repo      ConversationRepository
	logger    zerolog.Logger
}

func NewService(responder *Responder, repo ConversationRepository, logger zerolog.Logger) *Service {
	return &Service{responder: responder, repo: repo, logger: logger}
}

// Ask answers message. Conversations of signed-in users are stored; a failed
// write is logged and does not affect the reply.
func (s *Service) Ask(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	reply := s.responder.Reply(message)
	metrics.ChatbotRepliesTotal.WithLabelValues(reply.Kind).Inc()

	if p, ok := auth.PrincipalFromContext(ctx); ok && s.repo != nil {
		conv := &Conversation{
			UserID:   p.UserID,
			Message:  message,
			Response: reply.Text,
			Kind:     reply.Kind,
		}
		if reply.Keyword != "" {
			kw := reply.Keyword
			conv.Keyword = &kw
		}
		if err := s.repo.Create(ctx, conv); err != nil {
			metrics.PersistFailuresTotal.WithLabelValues("chatbot_conversation").Inc()
			s.logger.Error().Err(err).Str("user_id", p.UserID.String()).Msg("failed to store chatbot conversation")
		}
	}
	return reply, nil
}

func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Conversation, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
