package assessment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mentiq/mentiq/internal/domain/risk"
)

var ErrNotFound = errors.New("No assessment found")

// Request is a submitted questionnaire. Numeric answers are required; a
// missing boolean reads as false.
type Request struct {
	SleepHours       *int `json:"sleepHours" yaml:"sleepHours" validate:"required,min=0,max=24"`
	PhysicalActivity *int `json:"physicalActivity" yaml:"physicalActivity" validate:"required,min=0,max=168"`
	WorkHours        *int `json:"workHours" yaml:"workHours" validate:"required,min=0,max=168"`
	FinancialStress  *int `json:"financialStress" yaml:"financialStress" validate:"required,min=0,max=10"`
	ScreenTime       *int `json:"screenTime" yaml:"screenTime" validate:"required,min=0,max=24"`

	FeelingNervous       bool `json:"feelingNervous" yaml:"feelingNervous"`
	TroubleConcentrating bool `json:"troubleConcentrating" yaml:"troubleConcentrating"`
	Hopelessness         bool `json:"hopelessness" yaml:"hopelessness"`
	Anger                bool `json:"anger" yaml:"anger"`
	AvoidsPeople         bool `json:"avoidsPeople" yaml:"avoidsPeople"`
	Nightmares           bool `json:"nightmares" yaml:"nightmares"`
	StressfulMemories    bool `json:"stressfulMemories" yaml:"stressfulMemories"`

	FamilyHistory   *int `json:"familyHistory" yaml:"familyHistory" validate:"required,oneof=0 1"`
	SupportSystem   *int `json:"supportSystem" yaml:"supportSystem" validate:"required,oneof=0 1"`
	MedicationUsage *int `json:"medicationUsage" yaml:"medicationUsage" validate:"required,oneof=0 1"`

	Age    *int    `json:"age,omitempty" yaml:"age" validate:"omitempty,min=1,max=120"`
	Gender *string `json:"gender,omitempty" yaml:"gender" validate:"omitempty,max=32"`
}

// Input converts a validated request to engine input.
func (r *Request) Input() risk.Input {
	return risk.Input{
		SleepHours:           deref(r.SleepHours),
		PhysicalActivity:     deref(r.PhysicalActivity),
		WorkHours:            deref(r.WorkHours),
		FinancialStress:      deref(r.FinancialStress),
		ScreenTime:           deref(r.ScreenTime),
		FeelingNervous:       r.FeelingNervous,
		TroubleConcentrating: r.TroubleConcentrating,
		Hopelessness:         r.Hopelessness,
		Anger:                r.Anger,
		AvoidsPeople:         r.AvoidsPeople,
		Nightmares:           r.Nightmares,
		StressfulMemories:    r.StressfulMemories,
		FamilyHistory:        deref(r.FamilyHistory),
		SupportSystem:        deref(r.SupportSystem),
		MedicationUsage:      deref(r.MedicationUsage),
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Record is a scored assessment. UserID is nil for anonymous submissions,
// which are never stored.
type Record struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Age             *int       `json:"age,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	RiskScore       int        `json:"riskScore"`
	RiskLevel       risk.Level `json:"riskLevel"`
	RiskFactors     []string   `json:"riskFactors"`
	Recommendations []string   `json:"recommendations"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NeedsProfessionalHelp reports whether the stored score crosses the
// referral threshold.
func (r *Record) NeedsProfessionalHelp() bool {
	return r.RiskScore >= risk.ReferralThreshold
}

// View is the JSON shape returned to clients. Score duplicates RiskScore for
// older clients.
type View struct {
	ID                    *uuid.UUID `json:"id,omitempty"`
	RiskScore             int        `json:"riskScore"`
	Score                 int        `json:"score"`
	RiskLevel             risk.Level `json:"riskLevel"`
	LevelDescription      string     `json:"levelDescription"`
	RiskFactors           []string   `json:"riskFactors"`
	Recommendations       []string   `json:"recommendations"`
	NeedsProfessionalHelp bool       `json:"needsProfessionalHelp"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
}

func (r *Record) View() View {
	v := View{
		RiskScore:             r.RiskScore,
		Score:                 r.RiskScore,
		RiskLevel:             r.RiskLevel,
		LevelDescription:      r.RiskLevel.Description(),
		RiskFactors:           r.RiskFactors,
		Recommendations:       r.Recommendations,
		NeedsProfessionalHelp: r.NeedsProfessionalHelp(),
	}
	if v.RiskFactors == nil {
		v.RiskFactors = []string{}
	}
	if v.Recommendations == nil {
		v.Recommendations = []string{}
	}
	if r.ID != uuid.Nil {
		id := r.ID
		v.ID = &id
	}
	if !r.CreatedAt.IsZero() {
		at := r.CreatedAt
		v.CreatedAt = &at
	}
	return v
}
