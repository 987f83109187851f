package prequal

import "github.com/iwvelando/prequal/pkg/mathutil"

// CashOut is the refinance equity available under the policy LTV ceiling.
type CashOut struct {
	MaxRefinanceAmount     float64 `json:"maxRefinanceAmount"`
	AvailableRefinanceCash float64 `json:"availableRefinanceCash"`
}

// ComputeCashOut returns the largest refinanceable amount for the property
// and how much of it is left after paying off the current balance.
func ComputeCashOut(propertyValue, currentBalance float64, policy Policy) CashOut {
	maxAmount := mathutil.ApplyPercentage(mathutil.NonNegative(propertyValue), policy.Refinance.MaxLTV)
	return CashOut{
		MaxRefinanceAmount:     maxAmount,
		AvailableRefinanceCash: mathutil.Max(maxAmount-mathutil.NonNegative(currentBalance), 0),
	}
}
