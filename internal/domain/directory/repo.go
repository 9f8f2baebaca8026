package directory

import (
	"context"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	List(ctx context.Context, f DoctorFilter) ([]*Doctor, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}

type ArticleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	List(ctx context.Context, category string) ([]*Article, error)
	Categories(ctx context.Context) ([]string, error)
}
