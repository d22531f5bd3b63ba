package quiz

// Tier is the feedback tier for a final score.
type Tier int

// Feedback tiers, best first.
const (
	TierEncourage Tier = iota
	TierGood
	TierGreat
	TierPerfect
)

const (
	greatPercent = 80
	goodPercent  = 50
)

// Grade returns the feedback tier for score out of total.
// Thresholds are inclusive lower bounds on the percentage, compared without rounding.
func Grade(score, total int) Tier {
	if total <= 0 {
		return TierEncourage
	}

	switch {
	case score == total:
		return TierPerfect
	case score*100 >= greatPercent*total:
		return TierGreat
	case score*100 >= goodPercent*total:
		return TierGood
	default:
		return TierEncourage
	}
}

// String returns the name of the tier.
func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGreat:
		return "great"
	case TierGood:
		return "good"
	case TierEncourage:
		return "encourage"
	default:
		return "unknown"
	}
}

// Message returns the message shown to the player for the tier.
func (t Tier) Message() string {
	switch t {
	case TierPerfect:
		return "Perfect score! You're a genius! 🎉"
	case TierGreat:
		return "Great job! You scored really well. Keep it up! 💪"
	case TierGood:
		return "Good effort! You can do even better with some more practice! 👍"
	default:
		return "Don't worry, keep trying, and you'll improve! 🌟"
	}
}
