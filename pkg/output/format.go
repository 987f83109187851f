// Package output provides utilities for formatting and displaying
// pre-qualification results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/format"
	"github.com/iwvelando/prequal/pkg/optimization"
	"github.com/iwvelando/prequal/pkg/prequal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Evaluation pairs an application name with its result and, when one was
// requested, the loan amount search.
type Evaluation struct {
	Name string `json:"name"`
	prequal.Result
	Optimization *optimization.Summary `json:"optimization,omitempty"`
}

// Write renders evaluations to w in the named output format.
func Write(w io.Writer, outputFormat string, evaluations []Evaluation) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		WritePretty(w, evaluations)
		return nil
	case constants.OutputFormatCSV:
		_, err := io.WriteString(w, CsvString(evaluations))
		return err
	case constants.OutputFormatJSON:
		return WriteJSON(w, evaluations)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, evaluations []Evaluation) {
	p := message.NewPrinter(language.English)
	for i, ev := range evaluations {
		_, _ = fmt.Fprintf(w, "--- Results for application %s ---\n", ev.Name)
		_, _ = fmt.Fprintf(w, "Status               | %s (%s)\n", ev.Label, ev.Status)
		_, _ = fmt.Fprintf(w, "Detail               | %s\n", ev.Detail)
		_, _ = fmt.Fprintf(w, "Category             | %s\n", ev.Category)
		_, _ = fmt.Fprintf(w, "Credit tier          | %s\n", ev.CreditTier)
		_, _ = fmt.Fprintf(w, "Monthly income       | %s\n", format.Currency(ev.MonthlyIncome))
		_, _ = fmt.Fprintf(w, "Proposed payment     | %s\n", format.Currency(ev.ProposedPayment))
		_, _ = fmt.Fprintf(w, "Eligible max payment | %s\n", format.Currency(ev.EligibleMaxPayment))
		_, _ = p.Fprintf(w, "Front-end DTI        | %.1f%%\n", ev.FrontEndDTI)
		_, _ = p.Fprintf(w, "Back-end DTI         | %.1f%%\n", ev.BackEndDTI)
		_, _ = p.Fprintf(w, "TDSR                 | %.1f%%\n", ev.TDSR)
		_, _ = p.Fprintf(w, "Loan-to-income       | %.1f%%\n", ev.LTI)
		if ev.Category.MortgageLike() {
			_, _ = p.Fprintf(w, "Loan-to-value        | %.1f%%\n", ev.LTV)
		}
		if ev.Category.Refinance() {
			_, _ = fmt.Fprintf(w, "Qualifying payment   | %s\n", format.Currency(ev.QualifyingPayment))
			_, _ = fmt.Fprintf(w, "Housing cost         | %s\n", format.Currency(ev.HousingCost))
			_, _ = p.Fprintf(w, "GDS                  | %.1f%%\n", ev.GDS)
			_, _ = p.Fprintf(w, "TDS                  | %.1f%%\n", ev.TDS)
			_, _ = fmt.Fprintf(w, "Max refinance amount | %s\n", format.Currency(ev.MaxRefinanceAmount))
			_, _ = fmt.Fprintf(w, "Available cash       | %s\n", format.Currency(ev.AvailableRefinanceCash))
		}
		if opt := ev.Optimization; opt != nil {
			_, _ = fmt.Fprintf(w, "Max qualifying loan  | %s for %s (%s)\n",
				format.WholeCurrency(opt.Value), opt.Target, optimizationState(opt))
			for _, note := range opt.Notes {
				_, _ = fmt.Fprintf(w, "  * %s\n", note)
			}
		}
		if len(ev.Reasons) > 0 {
			_, _ = fmt.Fprintf(w, "Reasons:\n")
			for _, reason := range ev.Reasons {
				_, _ = fmt.Fprintf(w, "  - %s\n", reason)
			}
		}
		if i < len(evaluations)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func optimizationState(opt *optimization.Summary) string {
	if opt.Converged {
		return fmt.Sprintf("converged after %d iterations", opt.Iterations)
	}
	return "not converged"
}

var csvColumns = []string{
	"name", "category", "status", "label", "credit tier",
	"monthly income", "proposed payment", "eligible max payment",
	"front-end dti", "back-end dti", "tdsr", "lti", "ltv",
	"qualifying payment", "gds", "tds", "max refinance amount", "available cash",
	"detail", "reasons",
}

// CsvString returns the comma-separated report, one row per application.
func CsvString(evaluations []Evaluation) string {
	var b strings.Builder
	writeCsvRow(&b, csvColumns)
	for _, ev := range evaluations {
		writeCsvRow(&b, []string{
			ev.Name,
			string(ev.Category),
			string(ev.Status),
			ev.Label,
			string(ev.CreditTier),
			amount(ev.MonthlyIncome),
			amount(ev.ProposedPayment),
			amount(ev.EligibleMaxPayment),
			ratio(ev.FrontEndDTI),
			ratio(ev.BackEndDTI),
			ratio(ev.TDSR),
			ratio(ev.LTI),
			ratio(ev.LTV),
			amount(ev.QualifyingPayment),
			ratio(ev.GDS),
			ratio(ev.TDS),
			amount(ev.MaxRefinanceAmount),
			amount(ev.AvailableRefinanceCash),
			ev.Detail,
			strings.Join(ev.Reasons, "; "),
		})
	}
	return b.String()
}

func writeCsvRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func ratio(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// WriteJSON writes evaluations as an indented JSON array.
func WriteJSON(w io.Writer, evaluations []Evaluation) error {
	if evaluations == nil {
		evaluations = []Evaluation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(evaluations); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
