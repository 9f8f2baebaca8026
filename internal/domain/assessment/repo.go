package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Latest(ctx context.Context, userID uuid.UUID) (*Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error)
}
