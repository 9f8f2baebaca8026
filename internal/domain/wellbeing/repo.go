package wellbeing

import (
	"context"

	"github.com/google/uuid"
)

type SavedItemRepository interface {
	// Create stores item unless the user already saved the same kind and ref,
	// in which case it returns false and leaves item untouched.
	Create(ctx context.Context, item *SavedItem) (bool, error)
	GetByRef(ctx context.Context, userID uuid.UUID, kind, ref string) (*SavedItem, error)
	List(ctx context.Context, userID uuid.UUID, kind string) ([]*SavedItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByKind(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

type StreakRepository interface {
	// Get returns the zero Streak when the user has never played.
	Get(ctx context.Context, userID uuid.UUID) (Streak, error)
	Save(ctx context.Context, userID uuid.UUID, s Streak) error
}
