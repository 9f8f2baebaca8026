package assessment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentiq/mentiq/internal/domain/risk"
	"github.com/mentiq/mentiq/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository { return &repoPG{q: q} }

func (r *repoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

const assessmentCols = `id, user_id, age, gender, risk_score, risk_level,
	risk_factors, recommendations, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var level string
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Age, &rec.Gender, &rec.RiskScore, &level,
		&rec.RiskFactors, &rec.Recommendations, &rec.CreatedAt)
	rec.RiskLevel = risk.Level(level)
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO assessments (id, user_id, age, gender, risk_score, risk_level,
			risk_factors, recommendations)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		rec.ID, rec.UserID, rec.Age, rec.Gender, rec.RiskScore, string(rec.RiskLevel),
		rec.RiskFactors, rec.Recommendations).Scan(&rec.CreatedAt)
}

func (r *repoPG) Latest(ctx context.Context, userID uuid.UUID) (*Record, error) {
	rec, err := scanRecord(r.conn(ctx).QueryRow(ctx, `SELECT `+assessmentCols+` FROM assessments
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM assessments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+assessmentCols+` FROM assessments
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}
