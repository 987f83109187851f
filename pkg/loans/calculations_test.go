package loans

import (
	"math"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Reference 30-year mortgage",
			principal:          175000,
			annualInterestRate: 4.5,
			termMonths:         360,
			expectedRange:      []float64{886.69, 886.71}, // $886.70
		},
		{
			name:               "Assumed mortgage terms",
			principal:          100000,
			annualInterestRate: 5.0,
			termMonths:         300,
			expectedRange:      []float64{584.5, 584.7}, // Around $584.59
		},
		{
			name:               "Assumed consumer terms",
			principal:          30000,
			annualInterestRate: 10.0,
			termMonths:         60,
			expectedRange:      []float64{637.3, 637.5}, // Around $637.41
		},
		{
			name:               "Zero interest is invalid",
			principal:          12000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Zero principal",
			principal:          0,
			annualInterestRate: 5.0,
			termMonths:         300,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Negative principal",
			principal:          -5000,
			annualInterestRate: 5.0,
			termMonths:         300,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Zero term",
			principal:          5000,
			annualInterestRate: 5.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "NaN rate",
			principal:          5000,
			annualInterestRate: math.NaN(),
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Infinite principal",
			principal:          math.Inf(1),
			annualInterestRate: 5.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestAmortizingEstimator(t *testing.T) {
	var est Estimator = Amortizing{}
	got := est.MonthlyPayment(175000, Terms{AnnualRate: 4.5, TermMonths: 360})
	if math.Abs(got-886.70) > 0.01 {
		t.Errorf("Amortizing.MonthlyPayment() = %.2f, expected 886.70", got)
	}
}

func TestEstimatorFunc(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64, Terms) float64
		expected float64
	}{
		{"Passes through valid estimate", func(float64, Terms) float64 { return 123.45 }, 123.45},
		{"Unavailable collaborator returning NaN", func(float64, Terms) float64 { return math.NaN() }, 0},
		{"Negative estimate", func(float64, Terms) float64 { return -1 }, 0},
		{"Infinite estimate", func(float64, Terms) float64 { return math.Inf(1) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimatorFunc(tt.fn).MonthlyPayment(1000, Terms{AnnualRate: 5, TermMonths: 12})
			if got != tt.expected {
				t.Errorf("EstimatorFunc.MonthlyPayment() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
