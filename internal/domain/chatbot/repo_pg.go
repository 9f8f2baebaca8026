package chatbot

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentiq/mentiq/internal/platform/db"
)

type conversationRepoPG struct{ q db.Querier }

func NewConversationRepoPG(q db.Querier) ConversationRepository {
	return &conversationRepoPG{q: q}
}

func (r *conversationRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.q)
}

const convCols = `id, user_id, message, response, kind, keyword, created_at`

func scanConversation(row pgx.Row) (*Conversation, error) {
	var c Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.Kind, &c.Keyword, &c.CreatedAt)
	return &c, err
}

func (r *conversationRepoPG) Create(ctx context.Context, c *Conversation) error {
	c.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO chatbot_conversations (id, user_id, message, response, kind, keyword)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		c.ID, c.UserID, c.Message, c.Response, c.Kind, c.Keyword).Scan(&c.CreatedAt)
}

func (r *conversationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Conversation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM chatbot_conversations WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+convCols+` FROM chatbot_conversations
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
