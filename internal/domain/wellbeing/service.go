package wellbeing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mentiq/mentiq/internal/domain/directory"
	"github.com/mentiq/mentiq/internal/domain/risk"
	"github.com/mentiq/mentiq/internal/platform/db"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

// Catalog resolves saved article and doctor references. *directory.Service
// satisfies it.
type Catalog interface {
	GetArticle(ctx context.Context, id uuid.UUID) (*directory.Article, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*directory.Doctor, error)
}

// RiskHistory reports the user's latest assessment level.
// *assessment.Service satisfies it.
type RiskHistory interface {
	LatestLevel(ctx context.Context, userID uuid.UUID) (risk.Level, bool, error)
}

type Service struct {
	saved   SavedItemRepository
	streaks StreakRepository
	catalog Catalog
	history RiskHistory
	tx      db.TxBeginner

	now   func() time.Time
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(saved SavedItemRepository, streaks StreakRepository, catalog Catalog, history RiskHistory, tx db.TxBeginner) *Service {
	return &Service{
		saved:   saved,
		streaks: streaks,
		catalog: catalog,
		history: history,
		tx:      tx,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.tx, fn)
}

// Cards draws n distinct motivation cards.
func (s *Service) Cards(n int) []Card {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return Draw(n, s.rng)
}

// Play records today's draw for the user and returns the updated streak.
func (s *Service) Play(ctx context.Context, userID uuid.UUID) (Streak, bool, error) {
	var next Streak
	var milestone bool
	err := s.inTx(ctx, func(ctx context.Context) error {
		prev, err := s.streaks.Get(ctx, userID)
		if err != nil {
			return err
		}
		next, milestone = NextStreak(prev, s.now())
		if next == prev {
			return nil
		}
		return s.streaks.Save(ctx, userID, next)
	})
	if err != nil {
		return Streak{}, false, err
	}
	return next, milestone, nil
}

// Save adds an item to the user's favorites. Saving the same item twice
// returns the existing entry with created false.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *SaveRequest) (*SavedItem, bool, error) {
	req.Kind = strings.TrimSpace(req.Kind)
	req.Ref = strings.TrimSpace(req.Ref)
	if err := validate.Struct(req); err != nil {
		return nil, false, err
	}
	title, err := s.resolve(ctx, req.Kind, req.Ref)
	if err != nil {
		return nil, false, err
	}

	item := &SavedItem{UserID: userID, Kind: req.Kind, Ref: req.Ref, Title: title}
	created, err := s.saved.Create(ctx, item)
	if err != nil {
		return nil, false, err
	}
	if !created {
		existing, err := s.saved.GetByRef(ctx, userID, req.Kind, req.Ref)
		return existing, false, err
	}
	return item, true, nil
}

func (s *Service) resolve(ctx context.Context, kind, ref string) (string, error) {
	if kind == KindMotivation {
		card, ok := CardAt(ref)
		if !ok {
			return "", ErrUnknownItem
		}
		return card.Message, nil
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return "", ErrUnknownItem
	}
	switch kind {
	case KindArticle:
		a, err := s.catalog.GetArticle(ctx, id)
		if errors.Is(err, directory.ErrArticleNotFound) {
			return "", ErrUnknownItem
		}
		if err != nil {
			return "", err
		}
		return a.Title, nil
	case KindDoctor:
		d, err := s.catalog.GetDoctor(ctx, id)
		if errors.Is(err, directory.ErrDoctorNotFound) {
			return "", ErrUnknownItem
		}
		if err != nil {
			return "", err
		}
		return d.Name, nil
	}
	return "", fmt.Errorf("unsupported saved item kind %q", kind)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, kind string) ([]*SavedItem, error) {
	return s.saved.List(ctx, userID, kind)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.saved.Delete(ctx, userID, id)
}

func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	counts, err := s.saved.CountByKind(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, k := range savedKinds {
		if _, ok := counts[k]; !ok {
			counts[k] = 0
		}
	}
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{SavedCounts: counts, Streak: streak}

	if s.history != nil {
		level, ok, err := s.history.LatestLevel(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			dash.LatestRiskLevel = &level
		}
	}
	return dash, nil
}
