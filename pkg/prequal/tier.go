package prequal

// CreditTier buckets a credit score for display.
type CreditTier string

// Credit tiers, best first.
const (
	TierExcellent CreditTier = "Excellent"
	TierVeryGood  CreditTier = "Very Good"
	TierGood      CreditTier = "Good"
	TierFair      CreditTier = "Fair"
	TierPoor      CreditTier = "Poor"
	TierUnrated   CreditTier = "Unrated"
)

// TierFor returns the tier for score. Scores below the 300 floor of the
// scoring range, including a missing score, are Unrated.
//
//	score >= 760  -> Excellent
//	score >= 725  -> Very Good
//	score >= 660  -> Good
//	score >= 560  -> Fair
//	score >= 300  -> Poor
func TierFor(score int) CreditTier {
	switch {
	case score >= 760:
		return TierExcellent
	case score >= 725:
		return TierVeryGood
	case score >= 660:
		return TierGood
	case score >= 560:
		return TierFair
	case score >= 300:
		return TierPoor
	default:
		return TierUnrated
	}
}
