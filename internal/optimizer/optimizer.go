// Package optimizer searches for the largest loan amount an application can
// request while keeping a target verdict.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/prequal/internal/config"
	"github.com/iwvelando/prequal/pkg/format"
	"github.com/iwvelando/prequal/pkg/optimization"
	"github.com/iwvelando/prequal/pkg/output"
	"github.com/iwvelando/prequal/pkg/prequal"
	"go.uber.org/zap"
)

// Runner evaluates candidate loan amounts with a fixed engine.
type Runner struct {
	logger *zap.Logger
	engine *prequal.Engine
}

type evaluation struct {
	value  float64
	status prequal.Status
	target prequal.Status
}

func (e evaluation) feasible() bool {
	return rank(e.status) >= rank(e.target)
}

func rank(s prequal.Status) int {
	switch s {
	case prequal.StatusApproved:
		return 2
	case prequal.StatusConditional:
		return 1
	default:
		return 0
	}
}

// Result summarizes optimizer searches keyed by application name.
type Result struct {
	Summaries map[string]optimization.Summary
}

// Empty indicates whether any searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches search summaries to the matching evaluations.
func (r Result) Apply(evaluations []output.Evaluation) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range evaluations {
		summary, ok := r.Summaries[evaluations[i].Name]
		if !ok {
			continue
		}
		s := summary
		evaluations[i].Optimization = &s
	}
}

// NewRunner returns a Runner evaluating candidates with engine. A nil engine
// uses the default policy.
func NewRunner(logger *zap.Logger, engine *prequal.Engine) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = prequal.New()
	}
	return &Runner{logger: logger, engine: engine}
}

// Run searches every active application that carries an optimizer directive.
func (r *Runner) Run(apps []config.Application) (*Result, error) {
	result := &Result{Summaries: make(map[string]optimization.Summary)}
	for _, app := range apps {
		if !app.Active || app.Optimizer == nil {
			continue
		}
		summary, err := r.MaxLoanAmount(app.Name, app.Request, *app.Optimizer)
		if err != nil {
			return nil, fmt.Errorf("optimizer failed for application %s: %w", app.Name, err)
		}
		result.Summaries[app.Name] = summary
	}
	return result, nil
}

// MaxLoanAmount bisects on the loan amount between cfg.Min and cfg.Max for
// the largest amount whose verdict is at least cfg's target. No gate improves
// as the loan amount grows, so the qualifying region is an interval starting
// at the lower bound.
func (r *Runner) MaxLoanAmount(name string, req prequal.Request, cfg config.OptimizerConfig) (optimization.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return optimization.Summary{}, err
	}
	target := cfg.TargetStatus()
	minVal, maxVal := *cfg.Min, *cfg.Max

	summary := optimization.Summary{
		TargetName: name,
		Field:      config.OptimizerFieldLoanAmount,
		Target:     string(target),
		Original:   req.LoanAmount,
		Min:        minVal,
		Max:        maxVal,
	}

	lowerEval := r.evaluate(req, minVal, target)
	upperEval := r.evaluate(req, maxVal, target)

	if upperEval.feasible() {
		summary.Value = upperEval.value
		summary.Status = string(upperEval.status)
		summary.Converged = true
		summary.Notes = []string{fmt.Sprintf("qualifies for %s at the upper bound %s",
			target, format.WholeCurrency(maxVal))}
		return summary, nil
	}

	if !lowerEval.feasible() {
		summary.Value = lowerEval.value
		summary.Status = string(lowerEval.status)
		summary.Notes = []string{fmt.Sprintf("unable to reach %s within bounds %s to %s",
			target, format.WholeCurrency(minVal), format.WholeCurrency(maxVal))}
		return summary, nil
	}

	iterations := 0
	best := lowerEval
	lower, upper := minVal, maxVal
	for iterations < cfg.MaxIterations && upper-lower > cfg.Tolerance {
		mid := lower + (upper-lower)/2
		evalMid := r.evaluate(req, mid, target)
		iterations++
		if evalMid.feasible() {
			best = evalMid
			lower = mid
		} else {
			upper = mid
		}
	}

	if snapped := math.Floor(best.value/cfg.Tolerance) * cfg.Tolerance; snapped >= minVal && snapped < best.value {
		if evalSnapped := r.evaluate(req, snapped, target); evalSnapped.feasible() {
			best = evalSnapped
		}
	}

	summary.Value = best.value
	summary.Status = string(best.status)
	summary.Iterations = iterations
	summary.Converged = upper-lower <= cfg.Tolerance
	if !summary.Converged {
		summary.Notes = []string{fmt.Sprintf("stopped after %d iterations", iterations)}
	}

	r.logger.Debug("loan amount search complete",
		zap.String("op", "optimizer.MaxLoanAmount"),
		zap.String("application", name),
		zap.String("target", string(target)),
		zap.Float64("value", summary.Value),
		zap.Int("iterations", iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary, nil
}

func (r *Runner) evaluate(req prequal.Request, amount float64, target prequal.Status) evaluation {
	req.LoanAmount = amount
	result := r.engine.Compute(req)
	return evaluation{value: amount, status: result.Status, target: target}
}
