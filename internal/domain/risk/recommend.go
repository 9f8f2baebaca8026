package risk

const (
	RecommendSleep        = "🛏️ Prioritize 7-9 hours of sleep nightly - establish a consistent bedtime routine"
	RecommendActivity     = "🏃‍♂️ Increase physical activity to at least 150 minutes per week - start with daily walks"
	RecommendWorkLife     = "⚖️ Consider work-life balance strategies and stress management techniques"
	RecommendFinancial    = "💰 Explore financial counseling or budgeting resources to reduce financial stress"
	RecommendScreenTime   = "📱 Reduce screen time, especially before bedtime, to improve sleep quality"
	RecommendSocial       = "🤝 Build social connections through community groups, therapy, or support networks"
	RecommendMindfulness  = "🧘‍♀️ Practice mindfulness, deep breathing, or meditation for anxiety management"
	RecommendCounseling   = "💭 Consider professional counseling or therapy for emotional support"
	RecommendResources    = "📚 Explore our mental health articles and resources"
	RecommendProfessional = "👨‍⚕️ Connect with qualified mental health professionals in our directory"
)

// recommendationRule appends text when applies reports true.
type recommendationRule struct {
	applies func(Input) bool
	text    string
}

// Screen time is recommended from 11 hours although it only scores from 14.
var recommendationRules = []recommendationRule{
	{func(in Input) bool { return in.SleepHours <= 6 }, RecommendSleep},
	{func(in Input) bool { return in.PhysicalActivity <= 3 }, RecommendActivity},
	{func(in Input) bool { return in.WorkHours >= 50 }, RecommendWorkLife},
	{func(in Input) bool { return in.FinancialStress >= 7 }, RecommendFinancial},
	{func(in Input) bool { return in.ScreenTime >= 11 }, RecommendScreenTime},
	{func(in Input) bool { return in.SupportSystem == 0 }, RecommendSocial},
	{func(in Input) bool { return in.FeelingNervous || in.TroubleConcentrating }, RecommendMindfulness},
	{func(in Input) bool { return in.Hopelessness || in.StressfulMemories }, RecommendCounseling},
}

// GenerateRecommendations evaluates every rule against the raw input and
// always closes with the two directory pointers.
func GenerateRecommendations(in Input) []string {
	recs := make([]string, 0, len(recommendationRules)+2)
	for _, r := range recommendationRules {
		if r.applies(in) {
			recs = append(recs, r.text)
		}
	}
	return append(recs, RecommendResources, RecommendProfessional)
}
