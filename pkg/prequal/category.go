package prequal

import "strings"

// LoanCategory is the product family a request is filed under.
type LoanCategory string

// Supported loan categories.
const (
	CategoryFirstTimeHome      LoanCategory = "first-time-home"
	CategoryInvestmentProperty LoanCategory = "investment-property"
	CategoryRefinance          LoanCategory = "refinance"
	CategoryHELOC              LoanCategory = "HELOC"
	CategoryHomeRepair         LoanCategory = "home-repair"
	CategoryPersonal           LoanCategory = "personal"
	CategoryCar                LoanCategory = "car"
	CategoryBusiness           LoanCategory = "business"
	CategoryCommercial         LoanCategory = "commercial"
	CategoryLineOfCredit       LoanCategory = "line-of-credit"
	CategoryOther              LoanCategory = "other"
)

// Categories lists every supported category in display order.
var Categories = []LoanCategory{
	CategoryFirstTimeHome,
	CategoryInvestmentProperty,
	CategoryRefinance,
	CategoryHELOC,
	CategoryHomeRepair,
	CategoryPersonal,
	CategoryCar,
	CategoryBusiness,
	CategoryCommercial,
	CategoryLineOfCredit,
	CategoryOther,
}

var categoryAliases = map[string]LoanCategory{
	"first-time-home":            CategoryFirstTimeHome,
	"first-time-home-buyer":      CategoryFirstTimeHome,
	"first-home":                 CategoryFirstTimeHome,
	"investment-property":        CategoryInvestmentProperty,
	"investment":                 CategoryInvestmentProperty,
	"refinance":                  CategoryRefinance,
	"refi":                       CategoryRefinance,
	"heloc":                      CategoryHELOC,
	"home-equity":                CategoryHELOC,
	"home-equity-line-of-credit": CategoryHELOC,
	"home-repair":                CategoryHomeRepair,
	"renovation":                 CategoryHomeRepair,
	"personal":                   CategoryPersonal,
	"car":                        CategoryCar,
	"auto":                       CategoryCar,
	"vehicle":                    CategoryCar,
	"business":                   CategoryBusiness,
	"commercial":                 CategoryCommercial,
	"line-of-credit":             CategoryLineOfCredit,
	"loc":                        CategoryLineOfCredit,
	"other":                      CategoryOther,
}

// ParseCategory maps free-form input onto a LoanCategory. Case, surrounding
// whitespace and the choice of space, underscore or hyphen as a separator are
// ignored. Anything unrecognised is CategoryOther.
func ParseCategory(s string) LoanCategory {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.Join(strings.Fields(normalized), "-")

	if c, ok := categoryAliases[normalized]; ok {
		return c
	}
	return CategoryOther
}

// UnmarshalText implements encoding.TextUnmarshaler so JSON payloads are
// normalized on decode.
func (c *LoanCategory) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// MortgageLike reports whether the category is secured by real property.
func (c LoanCategory) MortgageLike() bool {
	switch c {
	case CategoryFirstTimeHome, CategoryRefinance, CategoryInvestmentProperty, CategoryHELOC, CategoryHomeRepair:
		return true
	}
	return false
}

// Refinance reports whether the category takes the GDS/TDS path.
func (c LoanCategory) Refinance() bool {
	return c == CategoryRefinance
}
