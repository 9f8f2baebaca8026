package directory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound  = errors.New("Selected doctor not found")
	ErrArticleNotFound = errors.New("Article not found")
)

// Defaults applied to a listing created from a doctor registration.
const (
	DefaultCountry   = "Egypt"
	DefaultCity      = "Cairo"
	DefaultSpecialty = "General"
	DefaultRating    = 4.5
	DefaultAvatar    = "👨‍⚕️"
)

type Doctor struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Name            string     `json:"name"`
	Specialty       string     `json:"specialty"`
	Country         string     `json:"country"`
	City            string     `json:"city"`
	ExperienceYears int        `json:"experience_years"`
	Rating          float64    `json:"rating"`
	Avatar          string     `json:"avatar"`
	Phone           *string    `json:"phone,omitempty"`
	Email           *string    `json:"email,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Article struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Excerpt   string    `json:"excerpt"`
	Content   *string   `json:"content,omitempty"`
	Icon      string    `json:"icon"`
	ImageURL  *string   `json:"image_url,omitempty"`
	LinkURL   *string   `json:"link_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DoctorFilter narrows the doctor list. Empty fields match everything;
// set fields must match exactly.
type DoctorFilter struct {
	Country   string `query:"country"`
	City      string `query:"city"`
	Specialty string `query:"specialty"`
}

func (f DoctorFilter) cacheKey() string {
	return "doctors:country=" + f.Country + "|city=" + f.City + "|specialty=" + f.Specialty
}

// FilterOptions lists the distinct values usable in a DoctorFilter.
type FilterOptions struct {
	Countries   []string `json:"countries"`
	Cities      []string `json:"cities"`
	Specialties []string `json:"specialties"`
}
