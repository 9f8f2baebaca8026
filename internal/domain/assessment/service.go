package assessment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentiq/mentiq/internal/domain/risk"
	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/metrics"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit validates and scores req. When the context carries a principal the
// result is stored; a failed write is logged and the score still returned.
func (s *Service) Submit(ctx context.Context, req *Request) (*Record, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	res := risk.ComputeRisk(req.Input())
	metrics.AssessmentsTotal.WithLabelValues(res.RiskLevel.String()).Inc()
	metrics.AssessmentScore.Observe(float64(res.Score))

	rec := &Record{
		Age:             req.Age,
		Gender:          req.Gender,
		RiskScore:       res.Score,
		RiskLevel:       res.RiskLevel,
		RiskFactors:     res.RiskFactors,
		Recommendations: res.Recommendations,
	}

	p, ok := auth.PrincipalFromContext(ctx)
	if !ok || s.repo == nil {
		return rec, nil
	}
	uid := p.UserID
	rec.UserID = &uid
	if err := s.repo.Create(ctx, rec); err != nil {
		metrics.PersistFailuresTotal.WithLabelValues("assessment").Inc()
		s.logger.Error().Err(err).Str("user_id", uid.String()).Msg("failed to store assessment")
		rec.ID = uuid.Nil
	}
	return rec, nil
}

func (s *Service) Latest(ctx context.Context, userID uuid.UUID) (*Record, error) {
	return s.repo.Latest(ctx, userID)
}

func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// LatestLevel returns the level of the user's most recent assessment, or
// false when there is none.
func (s *Service) LatestLevel(ctx context.Context, userID uuid.UUID) (risk.Level, bool, error) {
	rec, err := s.repo.Latest(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.RiskLevel, true, nil
}
