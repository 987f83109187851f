package prequal

import "testing"

// passingRatios returns a non-mortgage ratio set that clears every gate.
func passingRatios() RatioSet {
	return RatioSet{
		Category:        CategoryPersonal,
		CreditScore:     760,
		AnnualIncome:    120000,
		MonthlyIncome:   10000,
		EmploymentYears: 5,
		BackEndDTI:      20,
		TDSR:            10,
		LTI:             15,
	}
}

func ruleByID(t *testing.T, v Verdict, id RuleID) RuleResult {
	t.Helper()
	for _, r := range v.Rules {
		if r.RuleID == id {
			return r
		}
	}
	t.Fatalf("rule %s not evaluated", id)
	return RuleResult{}
}

func TestClassifyBoundaries(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name            string
		mutate          func(*RatioSet)
		rule            RuleID
		wantPassed      bool
		wantConditional bool
	}{
		{"Credit at minimum", func(r *RatioSet) { r.CreditScore = 730 }, RuleCredit, true, false},
		{"Credit one below minimum", func(r *RatioSet) { r.CreditScore = 729 }, RuleCredit, false, true},
		{"Credit at band edge", func(r *RatioSet) { r.CreditScore = 710 }, RuleCredit, false, true},
		{"Credit below band", func(r *RatioSet) { r.CreditScore = 709 }, RuleCredit, false, false},
		{"Mortgage credit minimum", func(r *RatioSet) { r.Category = CategoryFirstTimeHome; r.PropertyValue = 1; r.CreditScore = 650 }, RuleCredit, true, false},
		{"DTI just below limit", func(r *RatioSet) { r.BackEndDTI = 35.99 }, RuleDTI, true, false},
		{"DTI at limit", func(r *RatioSet) { r.BackEndDTI = 36 }, RuleDTI, false, true},
		{"DTI at band top", func(r *RatioSet) { r.BackEndDTI = 40 }, RuleDTI, false, true},
		{"DTI above band", func(r *RatioSet) { r.BackEndDTI = 40.01 }, RuleDTI, false, false},
		{"TDSR just below limit", func(r *RatioSet) { r.TDSR = 33.99 }, RuleTDSR, true, false},
		{"TDSR at limit", func(r *RatioSet) { r.TDSR = 34 }, RuleTDSR, false, true},
		{"TDSR at band top", func(r *RatioSet) { r.TDSR = 40 }, RuleTDSR, false, true},
		{"TDSR above band", func(r *RatioSet) { r.TDSR = 40.01 }, RuleTDSR, false, false},
		{"LTI at limit", func(r *RatioSet) { r.LTI = 30 }, RuleLTI, false, false},
		{"Income at minimum", func(r *RatioSet) { r.AnnualIncome = 50000 }, RuleIncome, false, false},
		{"Income above minimum", func(r *RatioSet) { r.AnnualIncome = 50001 }, RuleIncome, true, false},
		{"Employment at minimum", func(r *RatioSet) { r.EmploymentYears = 3 }, RuleEmployment, false, false},
		{"Employment above minimum", func(r *RatioSet) { r.EmploymentYears = 3.5 }, RuleEmployment, true, false},
		{"LTV at limit", func(r *RatioSet) { r.Category = CategoryHELOC; r.PropertyValue = 1; r.LTV = 80 }, RuleLTV, true, false},
		{"LTV in band", func(r *RatioSet) { r.Category = CategoryHELOC; r.PropertyValue = 1; r.LTV = 80.5 }, RuleLTV, false, true},
		{"LTV at band top", func(r *RatioSet) { r.Category = CategoryHELOC; r.PropertyValue = 1; r.LTV = 97 }, RuleLTV, false, true},
		{"LTV above band", func(r *RatioSet) { r.Category = CategoryHELOC; r.PropertyValue = 1; r.LTV = 97.5 }, RuleLTV, false, false},
		{"GDS at limit", func(r *RatioSet) { r.Category = CategoryRefinance; r.PropertyValue = 1; r.GDS = 39 }, RuleGDS, true, false},
		{"GDS above limit", func(r *RatioSet) { r.Category = CategoryRefinance; r.PropertyValue = 1; r.GDS = 39.1 }, RuleGDS, false, false},
		{"TDS at limit", func(r *RatioSet) { r.Category = CategoryRefinance; r.PropertyValue = 1; r.TDS = 44 }, RuleTDS, true, false},
		{"TDS above limit", func(r *RatioSet) { r.Category = CategoryRefinance; r.PropertyValue = 1; r.TDS = 44.1 }, RuleTDS, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := passingRatios()
			tt.mutate(&r)
			got := ruleByID(t, Classify(r, policy), tt.rule)
			if got.Passed != tt.wantPassed || got.Conditional != tt.wantConditional {
				t.Errorf("%s = %+v, expected passed=%v conditional=%v",
					tt.rule, got, tt.wantPassed, tt.wantConditional)
			}
			if !got.Passed && got.Message == "" {
				t.Errorf("%s failed without a message", tt.rule)
			}
		})
	}
}

func TestClassifyVerdicts(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name   string
		mutate func(*RatioSet)
		want   Status
	}{
		{"All gates pass", func(r *RatioSet) {}, StatusApproved},
		{"Credit near miss", func(r *RatioSet) { r.CreditScore = 715 }, StatusConditional},
		{"DTI in band", func(r *RatioSet) { r.BackEndDTI = 38 }, StatusConditional},
		{"DTI in band with TDSR over pass but within ceiling", func(r *RatioSet) { r.BackEndDTI = 38; r.TDSR = 38 }, StatusConditional},
		{"DTI in band with TDSR over ceiling", func(r *RatioSet) { r.BackEndDTI = 38; r.TDSR = 41 }, StatusDeclined},
		{"Hard failure without band", func(r *RatioSet) { r.LTI = 45 }, StatusDeclined},
		{"TDSR in band", func(r *RatioSet) { r.TDSR = 38 }, StatusConditional},
		{"Every band at once", func(r *RatioSet) { r.CreditScore = 715; r.BackEndDTI = 38; r.TDSR = 38 }, StatusConditional},
		{"Band plus hard failure", func(r *RatioSet) { r.CreditScore = 715; r.LTI = 45 }, StatusDeclined},
		{"Income failure with DTI in band", func(r *RatioSet) {
			r.AnnualIncome = 40000
			r.MonthlyIncome = 40000.0 / 12
			r.BackEndDTI = 36.4
		}, StatusDeclined},
		{"Missing property value with DTI in band", func(r *RatioSet) {
			r.Category = CategoryFirstTimeHome
			r.BackEndDTI = 38
		}, StatusDeclined},
		{"Credit below conditional floor", func(r *RatioSet) {
			r.Category = CategoryFirstTimeHome
			r.PropertyValue = 1
			r.CreditScore = 619
			r.LTV = 85
		}, StatusDeclined},
		{"DTI above conditional ceiling", func(r *RatioSet) { r.CreditScore = 715; r.BackEndDTI = 46 }, StatusDeclined},
		{"No income", func(r *RatioSet) { r.AnnualIncome = 0; r.MonthlyIncome = 0; r.CreditScore = 715 }, StatusDeclined},
		{"LTV in band", func(r *RatioSet) { r.Category = CategoryHELOC; r.PropertyValue = 1; r.LTV = 90 }, StatusConditional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := passingRatios()
			tt.mutate(&r)
			v := Classify(r, policy)
			if v.Status != tt.want {
				t.Errorf("Status = %s, expected %s (reasons %v)", v.Status, tt.want, v.Reasons)
			}
			if v.Label != tt.want.Label() {
				t.Errorf("Label = %q, expected %q", v.Label, tt.want.Label())
			}
		})
	}
}

// Reasons must be exactly the messages of the failing rules, in rule order.
func TestReasonsMatchRules(t *testing.T) {
	r := passingRatios()
	r.CreditScore = 600
	r.TDSR = 50
	r.LTI = 90
	v := Classify(r, DefaultPolicy())

	var failing []string
	for _, res := range v.Rules {
		if !res.Passed {
			failing = append(failing, res.Message)
		}
	}
	if len(failing) != len(v.Reasons) {
		t.Fatalf("reasons %v do not match failing rules %v", v.Reasons, failing)
	}
	for i := range failing {
		if failing[i] != v.Reasons[i] {
			t.Errorf("reason %d = %q, expected %q", i, v.Reasons[i], failing[i])
		}
	}
	if v.Detail != v.Reasons[0] {
		t.Errorf("Detail = %q, expected %q", v.Detail, v.Reasons[0])
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusApproved, "Pre-Qualified"},
		{StatusConditional, "Likely Qualified with Conditions"},
		{StatusDeclined, "Not Pre-Qualified"},
		{Status("unknown"), "Not Pre-Qualified"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("%s.Label() = %q, expected %q", tt.status, got, tt.want)
		}
	}
}
