package wellbeing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentiq/mentiq/internal/platform/db"
)

// =========== Saved Item Repository ===========

type savedItemRepoPG struct{ q db.Querier }

func NewSavedItemRepoPG(q db.Querier) SavedItemRepository { return &savedItemRepoPG{q: q} }

func (r *savedItemRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

const savedCols = `id, user_id, kind, ref, title, created_at`

func scanSavedItem(row pgx.Row) (*SavedItem, error) {
	var s SavedItem
	err := row.Scan(&s.ID, &s.UserID, &s.Kind, &s.Ref, &s.Title, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *savedItemRepoPG) Create(ctx context.Context, item *SavedItem) (bool, error) {
	id := uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO saved_items (id, user_id, kind, ref, title)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, kind, ref) DO NOTHING
		RETURNING created_at`,
		id, item.UserID, item.Kind, item.Ref, item.Title).Scan(&item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	item.ID = id
	return true, nil
}

func (r *savedItemRepoPG) GetByRef(ctx context.Context, userID uuid.UUID, kind, ref string) (*SavedItem, error) {
	return scanSavedItem(r.conn(ctx).QueryRow(ctx, `SELECT `+savedCols+` FROM saved_items
		WHERE user_id = $1 AND kind = $2 AND ref = $3`, userID, kind, ref))
}

func (r *savedItemRepoPG) List(ctx context.Context, userID uuid.UUID, kind string) ([]*SavedItem, error) {
	query := `SELECT ` + savedCols + ` FROM saved_items WHERE user_id = $1`
	args := []interface{}{userID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SavedItem
	for rows.Next() {
		s, err := scanSavedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *savedItemRepoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM saved_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *savedItemRepoPG) CountByKind(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT kind, COUNT(*) FROM saved_items WHERE user_id = $1 GROUP BY kind`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// =========== Streak Repository ===========

type streakRepoPG struct{ q db.Querier }

func NewStreakRepoPG(q db.Querier) StreakRepository { return &streakRepoPG{q: q} }

func (r *streakRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

// Get locks the row when called inside a transaction.
func (r *streakRepoPG) Get(ctx context.Context, userID uuid.UUID) (Streak, error) {
	var s Streak
	err := r.conn(ctx).QueryRow(ctx, `SELECT streak, last_played FROM motivation_streaks
		WHERE user_id = $1 FOR UPDATE`, userID).Scan(&s.Count, &s.LastPlayed)
	if errors.Is(err, pgx.ErrNoRows) {
		return Streak{}, nil
	}
	return s, err
}

func (r *streakRepoPG) Save(ctx context.Context, userID uuid.UUID, s Streak) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO motivation_streaks (user_id, streak, last_played, updated_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (user_id) DO UPDATE SET streak = $2, last_played = $3, updated_at = NOW()`,
		userID, s.Count, s.LastPlayed)
	return err
}
