// Package risk scores a mental-health questionnaire with a fixed additive
// rule set. Every function in this package is pure: the same Input always
// yields the same Result and nothing is shared between calls.
package risk

// Input is one questionnaire submission. Numeric fields are expected to be
// validated by the caller; out-of-range values simply flow through the
// threshold comparisons.
type Input struct {
	SleepHours       int
	PhysicalActivity int
	WorkHours        int
	FinancialStress  int
	ScreenTime       int

	FeelingNervous       bool
	TroubleConcentrating bool
	Hopelessness         bool
	Anger                bool
	AvoidsPeople         bool
	Nightmares           bool
	StressfulMemories    bool

	FamilyHistory   int
	SupportSystem   int
	MedicationUsage int
}

// Level is the qualitative bucket derived from a clamped score.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

func (l Level) String() string { return string(l) }

// Description returns the sentence shown next to the level.
func (l Level) Description() string {
	switch l {
	case LevelLow:
		return "Your responses suggest good mental health with minimal risk factors."
	case LevelModerate:
		return "Some risk factors present. Consider lifestyle improvements and monitoring."
	case LevelHigh:
		return "Multiple risk factors identified. Professional consultation recommended."
	case LevelVeryHigh:
		return "Significant risk factors present. Immediate professional support strongly recommended."
	default:
		return ""
	}
}

// ReferralThreshold is the score from which a professional referral is offered.
const ReferralThreshold = 40

// Result is the outcome of scoring one Input. It is never mutated after
// ComputeRisk returns it.
type Result struct {
	Score           int      `json:"score"`
	RiskFactors     []string `json:"riskFactors"`
	RiskLevel       Level    `json:"riskLevel"`
	Recommendations []string `json:"recommendations"`
}

// NeedsProfessionalHelp reports whether the result warrants pointing the
// user to the professional directory.
func (r Result) NeedsProfessionalHelp() bool {
	return r.Score >= ReferralThreshold
}
