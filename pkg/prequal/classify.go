package prequal

import (
	"fmt"

	"github.com/iwvelando/prequal/pkg/format"
)

// Status is the tri-state pre-qualification outcome.
type Status string

// Verdict statuses.
const (
	StatusApproved    Status = "APPROVED"
	StatusConditional Status = "CONDITIONAL"
	StatusDeclined    Status = "DECLINED"
)

// Label returns the applicant-facing wording for the status.
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Pre-Qualified"
	case StatusConditional:
		return "Likely Qualified with Conditions"
	default:
		return "Not Pre-Qualified"
	}
}

// RuleID names a gate.
type RuleID string

// Gates in reason priority order.
const (
	RuleIncome     RuleID = "income"
	RuleCredit     RuleID = "credit"
	RuleEmployment RuleID = "employment"
	RuleDTI        RuleID = "dti"
	RuleTDSR       RuleID = "tdsr"
	RuleLTI        RuleID = "lti"
	RuleLTV        RuleID = "ltv"
	RuleGDS        RuleID = "gds"
	RuleTDS        RuleID = "tds"
)

// RuleResult is the evaluation of one gate. Conditional is set when the gate
// failed but landed inside its conditional band.
type RuleResult struct {
	RuleID      RuleID `json:"ruleId"`
	Passed      bool   `json:"passed"`
	Conditional bool   `json:"conditional,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Verdict is the classifier output.
type Verdict struct {
	Status  Status
	Label   string
	Detail  string
	Reasons []string
	Rules   []RuleResult
}

// approvedDetail is surfaced when no gate produced a reason.
const approvedDetail = "Meets all pre-qualification guidelines"

type rule struct {
	id       RuleID
	applies  func(r RatioSet) bool
	evaluate func(r RatioSet, p Policy) RuleResult
}

func always(RatioSet) bool { return true }

func nonMortgage(r RatioSet) bool { return !r.Category.MortgageLike() }

func mortgage(r RatioSet) bool { return r.Category.MortgageLike() }

func refinance(r RatioSet) bool { return r.Category.Refinance() }

// rules is ordered by reason priority.
var rules = []rule{
	{id: RuleIncome, applies: nonMortgage, evaluate: evaluateIncome},
	{id: RuleCredit, applies: always, evaluate: evaluateCredit},
	{id: RuleEmployment, applies: nonMortgage, evaluate: evaluateEmployment},
	{id: RuleDTI, applies: always, evaluate: evaluateDTI},
	{id: RuleTDSR, applies: always, evaluate: evaluateTDSR},
	{id: RuleLTI, applies: always, evaluate: evaluateLTI},
	{id: RuleLTV, applies: mortgage, evaluate: evaluateLTV},
	{id: RuleGDS, applies: refinance, evaluate: evaluateGDS},
	{id: RuleTDS, applies: refinance, evaluate: evaluateTDS},
}

// Classify evaluates every gate applicable to the ratio set's category and
// folds the results into a verdict. It always returns.
func Classify(r RatioSet, p Policy) Verdict {
	v := Verdict{Rules: EvaluateRules(r, p)}

	for _, res := range v.Rules {
		if !res.Passed && res.Message != "" {
			v.Reasons = append(v.Reasons, res.Message)
		}
	}

	switch {
	case allPassed(v.Rules):
		v.Status = StatusApproved
	case onlyNearMisses(v.Rules) && withinConditionalCeilings(r, p):
		v.Status = StatusConditional
	default:
		v.Status = StatusDeclined
	}

	v.Label = v.Status.Label()
	v.Detail = approvedDetail
	if len(v.Reasons) > 0 {
		v.Detail = v.Reasons[0]
	}
	return v
}

// EvaluateRules returns the ordered gate evaluations for r.
func EvaluateRules(r RatioSet, p Policy) []RuleResult {
	results := make([]RuleResult, 0, len(rules))
	for _, ru := range rules {
		if !ru.applies(r) {
			continue
		}
		res := ru.evaluate(r, p)
		res.RuleID = ru.id
		results = append(results, res)
	}
	return results
}

func allPassed(results []RuleResult) bool {
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// onlyNearMisses reports whether every gate that did not pass landed in its
// conditional band. A single hard failure rules out a conditional verdict.
func onlyNearMisses(results []RuleResult) bool {
	for _, res := range results {
		if !res.Passed && !res.Conditional {
			return false
		}
	}
	return true
}

// withinConditionalCeilings applies the looser limits a conditional verdict
// still has to respect.
func withinConditionalCeilings(r RatioSet, p Policy) bool {
	if !r.HasIncome() {
		return false
	}
	return r.CreditScore >= p.Credit.ConditionalFloor &&
		r.BackEndDTI <= p.DebtToIncome.Ceiling &&
		r.TDSR <= p.TDSR.ConditionalMax
}

func pass() RuleResult {
	return RuleResult{Passed: true}
}

func fail(msg string, args ...interface{}) RuleResult {
	return RuleResult{Message: fmt.Sprintf(msg, args...)}
}

func conditional(msg string, args ...interface{}) RuleResult {
	return RuleResult{Conditional: true, Message: fmt.Sprintf(msg, args...)}
}

func evaluateIncome(r RatioSet, p Policy) RuleResult {
	if r.AnnualIncome > p.Applicant.MinAnnualIncome {
		return pass()
	}
	return fail("Annual income must exceed %s", format.WholeCurrency(p.Applicant.MinAnnualIncome))
}

func evaluateCredit(r RatioSet, p Policy) RuleResult {
	minimum := p.creditMinimum(r.Category)
	switch {
	case r.CreditScore >= minimum:
		return pass()
	case r.CreditScore >= minimum-p.Credit.ConditionalBand:
		return conditional("Credit score of %d is within %d points of the %d minimum",
			r.CreditScore, p.Credit.ConditionalBand, minimum)
	default:
		return fail("Credit score of %d is below the %d minimum", r.CreditScore, minimum)
	}
}

func evaluateEmployment(r RatioSet, p Policy) RuleResult {
	if r.EmploymentYears > p.Applicant.MinEmploymentYears {
		return pass()
	}
	return fail("Employment history must exceed %g years", p.Applicant.MinEmploymentYears)
}

func evaluateDTI(r RatioSet, p Policy) RuleResult {
	if !r.HasIncome() {
		return fail("Debt-to-income ratio cannot be assessed without income")
	}
	switch {
	case r.BackEndDTI < p.DebtToIncome.Max:
		return pass()
	case r.BackEndDTI <= p.DebtToIncome.ConditionalMax:
		return conditional("Debt-to-income ratio of %s is above the %s guideline",
			format.Percent(r.BackEndDTI), format.Threshold(p.DebtToIncome.Max))
	default:
		return fail("Debt-to-income ratio of %s exceeds the %s limit",
			format.Percent(r.BackEndDTI), format.Threshold(p.DebtToIncome.ConditionalMax))
	}
}

func evaluateTDSR(r RatioSet, p Policy) RuleResult {
	if !r.HasIncome() {
		return fail("Total debt service ratio cannot be assessed without income")
	}
	switch {
	case r.TDSR < p.TDSR.Max:
		return pass()
	case r.TDSR <= p.TDSR.ConditionalMax:
		return conditional("Total debt service ratio of %s is above the %s guideline",
			format.Percent(r.TDSR), format.Threshold(p.TDSR.Max))
	default:
		return fail("Total debt service ratio of %s exceeds the %s limit",
			format.Percent(r.TDSR), format.Threshold(p.TDSR.ConditionalMax))
	}
}

func evaluateLTI(r RatioSet, p Policy) RuleResult {
	if !r.HasIncome() {
		return fail("Loan-to-income ratio cannot be assessed without income")
	}
	if r.LTI < p.LoanToIncome.Max {
		return pass()
	}
	return fail("Loan amount is %s of annual income, above the %s limit",
		format.Percent(r.LTI), format.Threshold(p.LoanToIncome.Max))
}

func evaluateLTV(r RatioSet, p Policy) RuleResult {
	if !r.HasPropertyValue() {
		return fail("Estimated property value is required to assess loan-to-value")
	}
	switch {
	case r.LTV <= p.LoanToValue.Max:
		return pass()
	case r.LTV <= p.LoanToValue.ConditionalMax:
		return conditional("Loan-to-value of %s is above the %s guideline",
			format.Percent(r.LTV), format.Threshold(p.LoanToValue.Max))
	default:
		return fail("Loan-to-value of %s exceeds the %s limit",
			format.Percent(r.LTV), format.Threshold(p.LoanToValue.ConditionalMax))
	}
}

func evaluateGDS(r RatioSet, p Policy) RuleResult {
	if !r.HasIncome() {
		return fail("Gross debt service ratio cannot be assessed without income")
	}
	if r.GDS <= p.Refinance.GDSMax {
		return pass()
	}
	return fail("Gross debt service ratio of %s exceeds the %s limit",
		format.Percent(r.GDS), format.Threshold(p.Refinance.GDSMax))
}

func evaluateTDS(r RatioSet, p Policy) RuleResult {
	if !r.HasIncome() {
		return fail("Total debt service cannot be assessed without income")
	}
	if r.TDS <= p.Refinance.TDSMax {
		return pass()
	}
	return fail("Total debt service of %s exceeds the %s limit",
		format.Percent(r.TDS), format.Threshold(p.Refinance.TDSMax))
}
