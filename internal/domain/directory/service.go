package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentiq/mentiq/internal/platform/cache"
	"github.com/mentiq/mentiq/internal/platform/metrics"
)

const (
	keyArticleCategories = "articles:categories"
	keyDoctorFilters     = "doctors:filters"
	prefixDoctors        = "doctors:"
)

// Service serves the doctor and article listings. Reads go through an
// optional Redis cache; a nil cache or a Redis failure falls back to the
// database.
type Service struct {
	doctors  DoctorRepository
	articles ArticleRepository
	cache    *cache.Cache
	logger   zerolog.Logger
}

func NewService(doctors DoctorRepository, articles ArticleRepository, c *cache.Cache, logger zerolog.Logger) *Service {
	return &Service{doctors: doctors, articles: articles, cache: c, logger: logger}
}

func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, key, &v)
		switch {
		case err == nil:
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return v, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		default:
			metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("directory cache read failed")
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := s.cache.SetJSON(ctx, key, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("directory cache write failed")
	}
	return v, nil
}

func (s *Service) ListDoctors(ctx context.Context, f DoctorFilter) ([]*Doctor, error) {
	f.Country = strings.TrimSpace(f.Country)
	f.City = strings.TrimSpace(f.City)
	f.Specialty = strings.TrimSpace(f.Specialty)
	return cached(ctx, s, f.cacheKey(), func(ctx context.Context) ([]*Doctor, error) {
		return s.doctors.List(ctx, f)
	})
}

func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	return cached(ctx, s, keyDoctorFilters, s.doctors.FilterOptions)
}

func (s *Service) ListArticles(ctx context.Context, category string) ([]*Article, error) {
	category = strings.TrimSpace(category)
	return cached(ctx, s, "articles:category="+category, func(ctx context.Context) ([]*Article, error) {
		return s.articles.List(ctx, category)
	})
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return cached(ctx, s, keyArticleCategories, s.articles.Categories)
}

func (s *Service) GetArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// DoctorByUserID finds the listing owned by a doctor account.
func (s *Service) DoctorByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

// ProvisionDoctor creates the listing for a newly registered doctor account.
// It may run inside the caller's transaction, so cached doctor lists are left
// alone until the caller commits and calls InvalidateDoctors.
func (s *Service) ProvisionDoctor(ctx context.Context, userID uuid.UUID, name, email string, specialty *string) error {
	d := &Doctor{
		UserID:    &userID,
		Name:      name,
		Specialty: DefaultSpecialty,
		Country:   DefaultCountry,
		City:      DefaultCity,
		Rating:    DefaultRating,
		Avatar:    DefaultAvatar,
	}
	if specialty != nil && strings.TrimSpace(*specialty) != "" {
		d.Specialty = strings.TrimSpace(*specialty)
	}
	if email != "" {
		d.Email = &email
	}
	return s.doctors.Create(ctx, d)
}

// InvalidateDoctors drops cached doctor lists and filter options.
func (s *Service) InvalidateDoctors(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, prefixDoctors); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate doctor cache")
	}
}
