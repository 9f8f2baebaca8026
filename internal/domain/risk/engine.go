package risk

// Risk factor labels, in the order the rules evaluate them.
const (
	FactorSevereSleepDeprivation = "Severe sleep deprivation"
	FactorInsufficientSleep      = "Insufficient sleep"
	FactorVeryLowActivity        = "Very low physical activity"
	FactorLowActivity            = "Low physical activity"
	FactorWorkAndFinancial       = "High work stress and financial pressure"
	FactorExcessiveWork          = "Excessive work hours"
	FactorFinancialStress        = "High financial stress"
	FactorScreenTime             = "Excessive screen time"
	FactorAnxiety                = "Anxiety symptoms"
	FactorConcentration          = "Concentration issues"
	FactorHopelessness           = "Hopelessness"
	FactorAnger                  = "Anger/irritability"
	FactorSocialAvoidance        = "Social avoidance"
	FactorSleepDisturbances      = "Sleep disturbances"
	FactorIntrusiveMemories      = "Intrusive memories"
	FactorFamilyHistory          = "Family history of mental illness"
	FactorLimitedSupport         = "Limited social support"
	FactorMedication             = "Currently on mental health medication"
)

const (
	minScore = 0
	maxScore = 100

	pointsPerSymptom = 8
)

// symptom pairs a questionnaire flag with the factor it raises.
type symptom struct {
	present bool
	label   string
}

// symptoms returns the seven symptom flags in their fixed reporting order.
func (in Input) symptoms() [7]symptom {
	return [7]symptom{
		{in.FeelingNervous, FactorAnxiety},
		{in.TroubleConcentrating, FactorConcentration},
		{in.Hopelessness, FactorHopelessness},
		{in.Anger, FactorAnger},
		{in.AvoidsPeople, FactorSocialAvoidance},
		{in.Nightmares, FactorSleepDisturbances},
		{in.StressfulMemories, FactorIntrusiveMemories},
	}
}

// ComputeRisk scores in and attaches the level and recommendations.
func ComputeRisk(in Input) Result {
	score, factors := scoreInput(in)
	return Result{
		Score:           score,
		RiskFactors:     factors,
		RiskLevel:       LevelForScore(score),
		Recommendations: GenerateRecommendations(in),
	}
}

// scoreInput applies the additive rules. The running total may leave
// [0,100] between rules; only the final value is clamped.
func scoreInput(in Input) (int, []string) {
	score := 0
	factors := make([]string, 0, 8)

	switch {
	case in.SleepHours <= 4:
		score += 40
		factors = append(factors, FactorSevereSleepDeprivation)
	case in.SleepHours <= 6:
		score += 20
		factors = append(factors, FactorInsufficientSleep)
	case in.SleepHours >= 10:
		score -= 10
	}

	switch {
	case in.PhysicalActivity <= 1:
		score += 25
		factors = append(factors, FactorVeryLowActivity)
	case in.PhysicalActivity <= 3:
		score += 10
		factors = append(factors, FactorLowActivity)
	case in.PhysicalActivity >= 10:
		score -= 15
	}

	// The combined condition wins even when the hours alone would qualify.
	switch {
	case in.WorkHours >= 50 && in.FinancialStress >= 7:
		score += 30
		factors = append(factors, FactorWorkAndFinancial)
	case in.WorkHours >= 65:
		score += 20
		factors = append(factors, FactorExcessiveWork)
	}

	if in.FinancialStress >= 8 {
		score += 15
		factors = append(factors, FactorFinancialStress)
	}

	if in.ScreenTime >= 14 {
		score += 10
		factors = append(factors, FactorScreenTime)
	}

	count := 0
	for _, s := range in.symptoms() {
		if s.present {
			count++
			factors = append(factors, s.label)
		}
	}
	score += count * pointsPerSymptom

	if in.FamilyHistory == 1 {
		score += 12
		factors = append(factors, FactorFamilyHistory)
	}

	if in.SupportSystem == 0 {
		score += 15
		factors = append(factors, FactorLimitedSupport)
	} else {
		score -= 8
	}

	if in.MedicationUsage == 1 {
		score += 20
		factors = append(factors, FactorMedication)
	}

	return clamp(score, minScore, maxScore), factors
}

// LevelForScore maps a clamped score onto its level. Upper bounds are
// inclusive.
func LevelForScore(score int) Level {
	switch {
	case score <= 20:
		return LevelLow
	case score <= 40:
		return LevelModerate
	case score <= 65:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
