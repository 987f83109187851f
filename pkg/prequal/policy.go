package prequal

import "github.com/iwvelando/prequal/pkg/loans"

// Policy holds every threshold the classifier applies. Percent values are on
// a 0-100 scale. The zero Policy is not useful; start from DefaultPolicy.
type Policy struct {
	Credit       CreditPolicy       `mapstructure:"credit" yaml:"credit" json:"credit"`
	DebtToIncome DebtToIncomePolicy `mapstructure:"debtToIncome" yaml:"debtToIncome" json:"debtToIncome"`
	TDSR         TDSRPolicy         `mapstructure:"tdsr" yaml:"tdsr" json:"tdsr"`
	LoanToIncome LoanToIncomePolicy `mapstructure:"loanToIncome" yaml:"loanToIncome" json:"loanToIncome"`
	LoanToValue  LoanToValuePolicy  `mapstructure:"loanToValue" yaml:"loanToValue" json:"loanToValue"`
	Refinance    RefinancePolicy    `mapstructure:"refinance" yaml:"refinance" json:"refinance"`
	Applicant    ApplicantPolicy    `mapstructure:"applicant" yaml:"applicant" json:"applicant"`
	Terms        TermsPolicy        `mapstructure:"terms" yaml:"terms" json:"terms"`

	// EligiblePaymentShare is the share of monthly gross income surfaced as
	// the affordability guideline.
	EligiblePaymentShare float64 `mapstructure:"eligiblePaymentShare" yaml:"eligiblePaymentShare" json:"eligiblePaymentShare" validate:"gte=0,lte=100"`
}

// CreditPolicy sets credit score minimums. A score at or above the minimum
// passes; ConditionalBand points below it is a near miss.
type CreditPolicy struct {
	Minimum          int `mapstructure:"minimum" yaml:"minimum" json:"minimum" validate:"gte=0,lte=900"`
	MortgageMinimum  int `mapstructure:"mortgageMinimum" yaml:"mortgageMinimum" json:"mortgageMinimum" validate:"gte=0,lte=900"`
	ConditionalBand  int `mapstructure:"conditionalBand" yaml:"conditionalBand" json:"conditionalBand" validate:"gte=0,lte=600"`
	ConditionalFloor int `mapstructure:"conditionalFloor" yaml:"conditionalFloor" json:"conditionalFloor" validate:"gte=0,lte=900"`
}

// DebtToIncomePolicy gates back-end DTI: below Max passes, up to
// ConditionalMax inclusive is the conditional band, and Ceiling is the hard
// limit for a conditional verdict.
type DebtToIncomePolicy struct {
	Max            float64 `mapstructure:"max" yaml:"max" json:"max" validate:"gt=0"`
	ConditionalMax float64 `mapstructure:"conditionalMax" yaml:"conditionalMax" json:"conditionalMax" validate:"gtefield=Max"`
	Ceiling        float64 `mapstructure:"ceiling" yaml:"ceiling" json:"ceiling" validate:"gtefield=Max"`
}

// TDSRPolicy gates TDSR: below Max passes and up to ConditionalMax inclusive
// is the conditional band.
type TDSRPolicy struct {
	Max            float64 `mapstructure:"max" yaml:"max" json:"max" validate:"gt=0"`
	ConditionalMax float64 `mapstructure:"conditionalMax" yaml:"conditionalMax" json:"conditionalMax" validate:"gtefield=Max"`
}

// LoanToIncomePolicy gates LTI: below Max passes.
type LoanToIncomePolicy struct {
	Max float64 `mapstructure:"max" yaml:"max" json:"max" validate:"gt=0"`
}

// LoanToValuePolicy gates LTV for mortgage-like categories: at or below Max
// passes, above it and up to ConditionalMax is the conditional band.
type LoanToValuePolicy struct {
	Max            float64 `mapstructure:"max" yaml:"max" json:"max" validate:"gt=0"`
	ConditionalMax float64 `mapstructure:"conditionalMax" yaml:"conditionalMax" json:"conditionalMax" validate:"gtefield=Max"`
}

// RefinancePolicy holds the GDS/TDS limits and cash-out parameters.
type RefinancePolicy struct {
	GDSMax float64 `mapstructure:"gdsMax" yaml:"gdsMax" json:"gdsMax" validate:"gt=0"`
	TDSMax float64 `mapstructure:"tdsMax" yaml:"tdsMax" json:"tdsMax" validate:"gtefield=GDSMax"`
	// MaxLTV caps the refinanceable amount as a percent of property value.
	MaxLTV float64 `mapstructure:"maxLTV" yaml:"maxLTV" json:"maxLTV" validate:"gt=0,lte=100"`
	// QualifyingRate prices the payment used in GDS/TDS. Zero means the
	// assumed mortgage rate.
	QualifyingRate float64 `mapstructure:"qualifyingRate" yaml:"qualifyingRate" json:"qualifyingRate" validate:"gte=0,lte=100"`
	// CondoFeeWeight is the percent of condo fees counted as housing cost.
	CondoFeeWeight float64 `mapstructure:"condoFeeWeight" yaml:"condoFeeWeight" json:"condoFeeWeight" validate:"gte=0,lte=100"`
}

// ApplicantPolicy holds the income and employment gates applied to
// non-mortgage categories. Both must be strictly exceeded.
type ApplicantPolicy struct {
	MinAnnualIncome    float64 `mapstructure:"minAnnualIncome" yaml:"minAnnualIncome" json:"minAnnualIncome" validate:"gte=0"`
	MinEmploymentYears float64 `mapstructure:"minEmploymentYears" yaml:"minEmploymentYears" json:"minEmploymentYears" validate:"gte=0"`
}

// TermsPolicy holds the assumed pricing used to estimate the proposed payment.
type TermsPolicy struct {
	Mortgage loans.Terms `mapstructure:"mortgage" yaml:"mortgage" json:"mortgage"`
	General  loans.Terms `mapstructure:"general" yaml:"general" json:"general"`
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Credit: CreditPolicy{
			Minimum:          730,
			MortgageMinimum:  650,
			ConditionalBand:  20,
			ConditionalFloor: 620,
		},
		DebtToIncome: DebtToIncomePolicy{
			Max:            36,
			ConditionalMax: 40,
			Ceiling:        45,
		},
		TDSR: TDSRPolicy{
			Max:            34,
			ConditionalMax: 40,
		},
		LoanToIncome: LoanToIncomePolicy{
			Max: 30,
		},
		LoanToValue: LoanToValuePolicy{
			Max:            80,
			ConditionalMax: 97,
		},
		Refinance: RefinancePolicy{
			GDSMax:         39,
			TDSMax:         44,
			MaxLTV:         80,
			QualifyingRate: 5,
			CondoFeeWeight: 100,
		},
		Applicant: ApplicantPolicy{
			MinAnnualIncome:    50000,
			MinEmploymentYears: 3,
		},
		Terms: TermsPolicy{
			Mortgage: loans.Terms{AnnualRate: 5, TermMonths: 300},
			General:  loans.Terms{AnnualRate: 10, TermMonths: 60},
		},
		EligiblePaymentShare: 15,
	}
}

// creditMinimum returns the passing score for the category.
func (p Policy) creditMinimum(c LoanCategory) int {
	if c.MortgageLike() {
		return p.Credit.MortgageMinimum
	}
	return p.Credit.Minimum
}

// termsFor returns the assumed terms for the category.
func (p Policy) termsFor(c LoanCategory) loans.Terms {
	if c.MortgageLike() {
		return p.Terms.Mortgage
	}
	return p.Terms.General
}

// qualifyingTerms returns the terms used for the refinance stress payment.
func (p Policy) qualifyingTerms() loans.Terms {
	terms := p.Terms.Mortgage
	if p.Refinance.QualifyingRate > 0 {
		terms.AnnualRate = p.Refinance.QualifyingRate
	}
	return terms
}
