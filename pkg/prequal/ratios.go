package prequal

import (
	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/loans"
	"github.com/iwvelando/prequal/pkg/mathutil"
)

// RatioSet is every qualifying ratio for one request together with the
// applicant facts the classifier gates on. Ratios are percentages.
type RatioSet struct {
	Category        LoanCategory
	CreditScore     int
	AnnualIncome    float64
	MonthlyIncome   float64
	EmploymentYears float64
	LoanAmount      float64
	PropertyValue   float64
	MonthlyDebts    float64

	ProposedPayment float64

	FrontEndDTI float64
	BackEndDTI  float64
	TDSR        float64
	LTI         float64
	LTV         float64

	// Refinance only.
	QualifyingPayment float64
	HousingCost       float64
	NonHousingDebt    float64
	GDS               float64
	TDS               float64
}

// HasIncome reports whether income-denominated ratios are defined. When it
// is false they are reported as 0 and their gates fail.
func (r RatioSet) HasIncome() bool {
	return r.AnnualIncome > 0
}

// HasPropertyValue reports whether LTV is defined.
func (r RatioSet) HasPropertyValue() bool {
	return r.PropertyValue > 0
}

// ComputeRatios derives the ratio set for req. est may be nil, in which case
// the standard amortizing estimator is used.
func ComputeRatios(req Request, policy Policy, est loans.Estimator) RatioSet {
	return computeRatios(req.normalize(), policy, est)
}

func computeRatios(app application, policy Policy, est loans.Estimator) RatioSet {
	if est == nil {
		est = loans.Amortizing{}
	}
	cat := app.loan.category()

	r := RatioSet{
		Category:        cat,
		CreditScore:     app.creditScore,
		AnnualIncome:    app.annualIncome,
		MonthlyIncome:   app.annualIncome / constants.MonthsPerYear,
		EmploymentYears: app.employmentYears,
		LoanAmount:      app.loanAmount,
		MonthlyDebts:    app.monthlyDebts,
	}

	r.ProposedPayment = mathutil.NonNegative(est.MonthlyPayment(app.loanAmount, policy.termsFor(cat)))

	r.FrontEndDTI = ratio(app.monthlyDebts, r.MonthlyIncome)
	r.BackEndDTI = ratio(app.monthlyDebts+r.ProposedPayment, r.MonthlyIncome)
	r.TDSR = ratio(app.monthlyDebts*constants.MonthsPerYear, app.annualIncome)
	r.LTI = ratio(app.loanAmount, app.annualIncome)

	switch loan := app.loan.(type) {
	case refinanceLoan:
		r.applyMortgage(loan.mortgageLoan)
		r.applyRefinance(loan, policy, est)
	case mortgageLoan:
		r.applyMortgage(loan)
	}

	return r
}

func (r *RatioSet) applyMortgage(loan mortgageLoan) {
	r.PropertyValue = loan.propertyValue
	if loan.propertyValue > 0 {
		r.LTV = ratio(r.LoanAmount, loan.propertyValue)
	}
}

// applyRefinance computes GDS and TDS. The existing mortgage payment is
// already part of MonthlyDebts and is replaced by the new housing cost, so it
// is subtracted out of the non-housing term.
func (r *RatioSet) applyRefinance(loan refinanceLoan, policy Policy, est loans.Estimator) {
	r.QualifyingPayment = mathutil.NonNegative(est.MonthlyPayment(r.LoanAmount, policy.qualifyingTerms()))
	r.HousingCost = mathutil.Saturate(r.QualifyingPayment + loan.propertyTax + loan.heating +
		mathutil.ApplyPercentage(loan.condoFees, policy.Refinance.CondoFeeWeight))
	r.NonHousingDebt = mathutil.Max(r.MonthlyDebts-loan.mortgagePayment, 0)
	r.GDS = ratio(r.HousingCost, r.MonthlyIncome)
	r.TDS = ratio(r.HousingCost+r.NonHousingDebt, r.MonthlyIncome)
}

// ratio is value as a percentage of total. Sums or quotients that overflow
// are held at constants.MaxRatio so the gate reading them fails.
func ratio(value, total float64) float64 {
	return mathutil.FiniteRatio(mathutil.CalculatePercentage(value, total))
}
