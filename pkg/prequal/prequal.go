// Package prequal computes an explainable loan pre-qualification estimate
// from self-reported applicant data.
//
// The engine is a pure function of its input: it performs no I/O, holds no
// mutable state and never fails. Malformed numeric input is coerced to 0 and
// pushes the verdict toward DECLINED instead of raising an error. An *Engine
// is safe for concurrent use.
package prequal

import (
	"github.com/iwvelando/prequal/pkg/loans"
	"github.com/iwvelando/prequal/pkg/mathutil"
)

// Result is everything computed for one request.
type Result struct {
	Category LoanCategory `json:"category"`

	MonthlyIncome   float64 `json:"monthlyIncome"`
	ProposedPayment float64 `json:"proposedPayment"`

	FrontEndDTI float64 `json:"frontEndDTI"`
	BackEndDTI  float64 `json:"backEndDTI"`
	TDSR        float64 `json:"tdsr"`
	LTI         float64 `json:"lti"`
	LTV         float64 `json:"ltv"`

	QualifyingPayment      float64 `json:"qualifyingPayment,omitempty"`
	HousingCost            float64 `json:"housingCost,omitempty"`
	NonHousingDebt         float64 `json:"nonHousingDebt,omitempty"`
	GDS                    float64 `json:"gds,omitempty"`
	TDS                    float64 `json:"tds,omitempty"`
	MaxRefinanceAmount     float64 `json:"maxRefinanceAmount,omitempty"`
	AvailableRefinanceCash float64 `json:"availableRefinanceCash,omitempty"`

	CreditTier         CreditTier `json:"creditTier"`
	EligibleMaxPayment float64    `json:"eligibleMaxPayment"`

	Status  Status       `json:"status"`
	Label   string       `json:"label"`
	Detail  string       `json:"detail"`
	Reasons []string     `json:"reasons"`
	Rules   []RuleResult `json:"rules"`
}

// Engine evaluates requests against a fixed policy.
type Engine struct {
	policy    Policy
	estimator loans.Estimator
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy replaces the default thresholds.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithEstimator replaces the payment estimator. A nil estimator keeps the
// standard amortizing formula.
func WithEstimator(est loans.Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// New returns an Engine using DefaultPolicy and the amortizing estimator
// unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		policy:    DefaultPolicy(),
		estimator: loans.Amortizing{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns a copy of the engine's thresholds.
func (e *Engine) Policy() Policy {
	return e.policy
}

var defaultEngine = New()

// ComputePrequalification evaluates req with the default policy.
func ComputePrequalification(req Request) Result {
	return defaultEngine.Compute(req)
}

// Compute evaluates req.
func (e *Engine) Compute(req Request) Result {
	app := req.normalize()
	ratios := computeRatios(app, e.policy, e.estimator)
	verdict := Classify(ratios, e.policy)

	result := Result{
		Category:           ratios.Category,
		MonthlyIncome:      ratios.MonthlyIncome,
		ProposedPayment:    ratios.ProposedPayment,
		FrontEndDTI:        ratios.FrontEndDTI,
		BackEndDTI:         ratios.BackEndDTI,
		TDSR:               ratios.TDSR,
		LTI:                ratios.LTI,
		LTV:                ratios.LTV,
		QualifyingPayment:  ratios.QualifyingPayment,
		HousingCost:        ratios.HousingCost,
		NonHousingDebt:     ratios.NonHousingDebt,
		GDS:                ratios.GDS,
		TDS:                ratios.TDS,
		CreditTier:         TierFor(ratios.CreditScore),
		EligibleMaxPayment: EligibleMaxPayment(ratios.MonthlyIncome, e.policy),
		Status:             verdict.Status,
		Label:              verdict.Label,
		Detail:             verdict.Detail,
		Reasons:            verdict.Reasons,
		Rules:              verdict.Rules,
	}
	if result.Reasons == nil {
		result.Reasons = []string{}
	}

	if loan, ok := app.loan.(refinanceLoan); ok {
		cash := ComputeCashOut(loan.propertyValue, loan.currentBalance, e.policy)
		result.MaxRefinanceAmount = cash.MaxRefinanceAmount
		result.AvailableRefinanceCash = cash.AvailableRefinanceCash
	}

	return result
}

// EligibleMaxPayment is the affordability guideline: a fixed share of
// monthly gross income. It does not affect the verdict.
func EligibleMaxPayment(monthlyIncome float64, p Policy) float64 {
	return mathutil.ApplyPercentage(mathutil.NonNegative(monthlyIncome), p.EligiblePaymentShare)
}
