package wellbeing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mentiq/mentiq/internal/domain/risk"
)

var (
	ErrNotFound    = errors.New("Saved item not found")
	ErrUnknownItem = errors.New("Item does not exist")
)

const (
	KindArticle    = "article"
	KindDoctor     = "doctor"
	KindMotivation = "motivation"
)

var savedKinds = []string{KindArticle, KindDoctor, KindMotivation}

// SavedItem is a user's favorite. Ref is the article or doctor id, or the
// deck index of a motivation card. Title is captured when saving.
type SavedItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Ref       string    `json:"ref"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveRequest struct {
	Kind string `json:"kind" validate:"required,oneof=article doctor motivation"`
	Ref  string `json:"ref" validate:"required,notblank,max=64"`
}

// Dashboard summarizes a user's activity.
type Dashboard struct {
	SavedCounts     map[string]int `json:"saved_counts"`
	Streak          Streak         `json:"streak"`
	LatestRiskLevel *risk.Level    `json:"latest_risk_level,omitempty"`
}
