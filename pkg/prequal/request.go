package prequal

import "github.com/iwvelando/prequal/pkg/mathutil"

// Request is the self-reported application data a pre-qualification is
// computed from. The refinance-only fields are ignored for every other
// category.
type Request struct {
	LoanAmount              float64      `json:"loanAmount" yaml:"loanAmount" mapstructure:"loanAmount"`
	GrossAnnualIncome       float64      `json:"grossAnnualIncome" yaml:"grossAnnualIncome" mapstructure:"grossAnnualIncome"`
	ExistingMonthlyDebts    float64      `json:"existingMonthlyDebts" yaml:"existingMonthlyDebts" mapstructure:"existingMonthlyDebts"`
	EstimatedPropertyValue  float64      `json:"estimatedPropertyValue" yaml:"estimatedPropertyValue" mapstructure:"estimatedPropertyValue"`
	CreditScore             int          `json:"creditScore" yaml:"creditScore" mapstructure:"creditScore"`
	EmploymentDurationYears float64      `json:"employmentDurationYears" yaml:"employmentDurationYears" mapstructure:"employmentDurationYears"`
	LoanCategory            LoanCategory `json:"loanCategory" yaml:"loanCategory" mapstructure:"loanCategory"`

	CurrentMortgageBalance float64 `json:"currentMortgageBalance,omitempty" yaml:"currentMortgageBalance,omitempty" mapstructure:"currentMortgageBalance"`
	MonthlyMortgagePayment float64 `json:"monthlyMortgagePayment,omitempty" yaml:"monthlyMortgagePayment,omitempty" mapstructure:"monthlyMortgagePayment"`
	PropertyTaxMonthly     float64 `json:"propertyTaxMonthly,omitempty" yaml:"propertyTaxMonthly,omitempty" mapstructure:"propertyTaxMonthly"`
	HeatingCostMonthly     float64 `json:"heatingCostMonthly,omitempty" yaml:"heatingCostMonthly,omitempty" mapstructure:"heatingCostMonthly"`
	CondoFeesMonthly       float64 `json:"condoFeesMonthly,omitempty" yaml:"condoFeesMonthly,omitempty" mapstructure:"condoFeesMonthly"`
}

// application is a Request after coercion, with the category-specific
// attributes moved into loan.
type application struct {
	loanAmount      float64
	annualIncome    float64
	monthlyDebts    float64
	creditScore     int
	employmentYears float64
	loan            loanVariant
}

// loanVariant is one of generalLoan, mortgageLoan or refinanceLoan.
type loanVariant interface {
	category() LoanCategory
}

type generalLoan struct {
	cat LoanCategory
}

func (l generalLoan) category() LoanCategory { return l.cat }

type mortgageLoan struct {
	cat           LoanCategory
	propertyValue float64
}

func (l mortgageLoan) category() LoanCategory { return l.cat }

type refinanceLoan struct {
	mortgageLoan
	currentBalance  float64
	mortgagePayment float64
	propertyTax     float64
	heating         float64
	condoFees       float64
}

// normalize coerces every numeric field (NaN, ±Inf and negatives become 0)
// and selects the loan variant for the category. It never fails.
func (r Request) normalize() application {
	app := application{
		loanAmount:      mathutil.NonNegative(r.LoanAmount),
		annualIncome:    mathutil.NonNegative(r.GrossAnnualIncome),
		monthlyDebts:    mathutil.NonNegative(r.ExistingMonthlyDebts),
		creditScore:     r.CreditScore,
		employmentYears: mathutil.NonNegative(r.EmploymentDurationYears),
	}
	if app.creditScore < 0 {
		app.creditScore = 0
	}

	cat := ParseCategory(string(r.LoanCategory))
	switch {
	case cat.Refinance():
		app.loan = refinanceLoan{
			mortgageLoan:    mortgageLoan{cat: cat, propertyValue: mathutil.NonNegative(r.EstimatedPropertyValue)},
			currentBalance:  mathutil.NonNegative(r.CurrentMortgageBalance),
			mortgagePayment: mathutil.NonNegative(r.MonthlyMortgagePayment),
			propertyTax:     mathutil.NonNegative(r.PropertyTaxMonthly),
			heating:         mathutil.NonNegative(r.HeatingCostMonthly),
			condoFees:       mathutil.NonNegative(r.CondoFeesMonthly),
		}
	case cat.MortgageLike():
		app.loan = mortgageLoan{cat: cat, propertyValue: mathutil.NonNegative(r.EstimatedPropertyValue)}
	default:
		app.loan = generalLoan{cat: cat}
	}
	return app
}
