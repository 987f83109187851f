package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/prequal/pkg/prequal"
)

// ApplicationInfo is the subset of a configured application the validator
// inspects.
type ApplicationInfo struct {
	Name    string
	Active  bool
	Request prequal.Request
}

// ApplicationValidator collects warnings for an applications file. Warnings
// never stop an evaluation: the engine coerces anything malformed.
type ApplicationValidator struct {
	Applications []ApplicationInfo
}

// ValidateAll validates every application and returns warnings
func (av *ApplicationValidator) ValidateAll() []string {
	var warnings []string

	if len(av.Applications) == 0 {
		return append(warnings, "No applications defined")
	}

	seen := make(map[string]bool)
	active := 0
	for _, app := range av.Applications {
		if seen[app.Name] {
			warnings = append(warnings, fmt.Sprintf("Application name '%s' is used more than once", app.Name))
		}
		seen[app.Name] = true

		if !app.Active {
			continue
		}
		active++
		warnings = append(warnings, ValidateRequest(app.Name, app.Request)...)
	}

	if active == 0 {
		warnings = append(warnings, "No active applications; nothing will be evaluated")
	}
	return warnings
}

// ValidateRequest returns warnings for fields that will be coerced or
// ignored when req is evaluated.
func ValidateRequest(name string, req prequal.Request) []string {
	var warnings []string

	raw := strings.TrimSpace(string(req.LoanCategory))
	category := prequal.ParseCategory(raw)
	switch {
	case raw == "":
		warnings = append(warnings, fmt.Sprintf("Application '%s' has no loan category; evaluating as %s", name, prequal.CategoryOther))
	case category == prequal.CategoryOther && !strings.EqualFold(raw, string(prequal.CategoryOther)):
		warnings = append(warnings, fmt.Sprintf("Application '%s' has unrecognised loan category '%s'; evaluating as %s",
			name, raw, prequal.CategoryOther))
	}

	if req.CreditScore == 0 {
		warnings = append(warnings, fmt.Sprintf("Application '%s' has no credit score", name))
	} else if req.CreditScore < 300 || req.CreditScore > 900 {
		warnings = append(warnings, fmt.Sprintf("Application '%s' credit score %d is outside the 300-900 range",
			name, req.CreditScore))
	}

	numeric := []struct {
		field string
		value float64
	}{
		{"loanAmount", req.LoanAmount},
		{"grossAnnualIncome", req.GrossAnnualIncome},
		{"existingMonthlyDebts", req.ExistingMonthlyDebts},
		{"estimatedPropertyValue", req.EstimatedPropertyValue},
		{"employmentDurationYears", req.EmploymentDurationYears},
		{"currentMortgageBalance", req.CurrentMortgageBalance},
		{"monthlyMortgagePayment", req.MonthlyMortgagePayment},
		{"propertyTaxMonthly", req.PropertyTaxMonthly},
		{"heatingCostMonthly", req.HeatingCostMonthly},
		{"condoFeesMonthly", req.CondoFeesMonthly},
	}
	for _, n := range numeric {
		if n.value < 0 || math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			warnings = append(warnings, fmt.Sprintf("Application '%s' %s is %v and will be treated as 0",
				name, n.field, n.value))
		}
	}

	if category.MortgageLike() && req.EstimatedPropertyValue <= 0 {
		warnings = append(warnings, fmt.Sprintf("Application '%s' is %s but has no estimated property value",
			name, category))
	}

	if !category.Refinance() {
		refinanceOnly := req.CurrentMortgageBalance != 0 || req.MonthlyMortgagePayment != 0 ||
			req.PropertyTaxMonthly != 0 || req.HeatingCostMonthly != 0 || req.CondoFeesMonthly != 0
		if refinanceOnly {
			warnings = append(warnings, fmt.Sprintf("Application '%s' sets refinance-only fields that are ignored for %s",
				name, category))
		}
	}

	return warnings
}
