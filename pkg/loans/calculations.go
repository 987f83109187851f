// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/mathutil"
)

// Terms are the assumed pricing terms used to estimate a periodic payment.
type Terms struct {
	AnnualRate float64 `mapstructure:"annualRate" yaml:"annualRate" json:"annualRate" validate:"gt=0,lte=100"` // percent, nominal
	TermMonths int     `mapstructure:"termMonths" yaml:"termMonths" json:"termMonths" validate:"gt=0,lte=600"`
}

// Estimator returns the periodic payment for a principal under the given terms.
// Implementations must be pure: no I/O, same input same output.
type Estimator interface {
	MonthlyPayment(principal float64, terms Terms) float64
}

// EstimatorFunc adapts a function to Estimator. Non-finite or negative
// estimates are replaced by 0 so that a failing collaborator degrades the
// verdict instead of poisoning every ratio.
type EstimatorFunc func(principal float64, terms Terms) float64

// MonthlyPayment implements Estimator.
func (f EstimatorFunc) MonthlyPayment(principal float64, terms Terms) float64 {
	return mathutil.NonNegative(f(principal, terms))
}

// Amortizing is the standard fixed-rate amortizing-loan estimator.
type Amortizing struct{}

// MonthlyPayment implements Estimator.
func (Amortizing) MonthlyPayment(principal float64, terms Terms) float64 {
	return CalculateMonthlyPayment(principal, terms.AnnualRate, terms.TermMonths)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula P·r(1+r)^n / ((1+r)^n − 1). It returns 0 when
// the principal, rate or term is not a positive finite number.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if mathutil.NonNegative(principal) == 0 || mathutil.NonNegative(annualInterestRate) == 0 || termMonths <= 0 {
		return 0
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	payment := principal * periodicInterestRate * power / (power - 1.00)
	return mathutil.NonNegative(payment)
}
