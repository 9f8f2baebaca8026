package chatbot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentiq/mentiq/internal/platform/auth"
)

type mockConversationRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID][]*Conversation
	err   error
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{store: make(map[uuid.UUID][]*Conversation)}
}

func (m *mockConversationRepo) Create(_ context.Context, c *Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c.ID = uuid.New()
	m.store[c.UserID] = append(m.store[c.UserID], c)
	return nil
}

func (m *mockConversationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*Conversation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.store[userID]
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func newTestService(t *testing.T, repo ConversationRepository) *Service {
	t.Helper()
	return NewService(defaultResponder(t), repo, zerolog.Nop())
}

func patientCtx(id uuid.UUID) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: id, Email: "p@example.com", Role: auth.RolePatient})
}

func TestService_AskEmpty(t *testing.T) {
	svc := newTestService(t, newMockConversationRepo())
	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Ask(context.Background(), msg)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
}

func TestService_AskAnonymousNotStored(t *testing.T) {
	repo := newMockConversationRepo()
	svc := newTestService(t, repo)

	reply, err := svc.Ask(context.Background(), "I feel lonely")
	require.NoError(t, err)
	assert.Equal(t, "lonely", reply.Keyword)
	assert.Empty(t, repo.store)
}

func TestService_AskSignedInStored(t *testing.T) {
	repo := newMockConversationRepo()
	svc := newTestService(t, repo)
	uid := uuid.New()

	reply, err := svc.Ask(patientCtx(uid), "  anger issues  ")
	require.NoError(t, err)

	require.Len(t, repo.store[uid], 1)
	conv := repo.store[uid][0]
	assert.Equal(t, "anger issues", conv.Message)
	assert.Equal(t, reply.Text, conv.Response)
	assert.Equal(t, KindKeyword, conv.Kind)
	require.NotNil(t, conv.Keyword)
	assert.Equal(t, "anger", *conv.Keyword)

	items, total, err := svc.History(context.Background(), uid, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
}

func TestService_AskStoreFailureStillReplies(t *testing.T) {
	repo := newMockConversationRepo()
	repo.err = errors.New("db down")
	svc := newTestService(t, repo)

	reply, err := svc.Ask(patientCtx(uuid.New()), "random words")
	require.NoError(t, err)
	assert.Equal(t, KindFallback, reply.Kind)
}
