package config

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/prequal/pkg/prequal"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestOptimizerConfigNormalize(t *testing.T) {
	cfg := OptimizerConfig{Target: "  Conditional ", Max: floatPtr(100000)}
	cfg.Normalize()

	if cfg.Target != OptimizerTargetConditional {
		t.Fatalf("expected target %q, got %q", OptimizerTargetConditional, cfg.Target)
	}
	if cfg.Min == nil || *cfg.Min != 0 {
		t.Fatalf("expected default minimum 0, got %v", cfg.Min)
	}
	if cfg.Tolerance != defaultTolerance {
		t.Fatalf("expected default tolerance %v, got %v", defaultTolerance, cfg.Tolerance)
	}
	if cfg.MaxIterations != defaultMaxIterations {
		t.Fatalf("expected default max iterations %d, got %d", defaultMaxIterations, cfg.MaxIterations)
	}
	if cfg.TargetStatus() != prequal.StatusConditional {
		t.Fatalf("expected CONDITIONAL target status, got %s", cfg.TargetStatus())
	}

	var empty OptimizerConfig
	empty.Normalize()
	if empty.Target != OptimizerTargetApproved || empty.TargetStatus() != prequal.StatusApproved {
		t.Fatalf("expected approved default target, got %q", empty.Target)
	}
}

func TestOptimizerConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *OptimizerConfig
		expectErr string
	}{
		{name: "Valid", cfg: &OptimizerConfig{Max: floatPtr(50000)}},
		{name: "Nil", cfg: nil, expectErr: "cannot be nil"},
		{name: "Unknown target", cfg: &OptimizerConfig{Target: "declined", Max: floatPtr(1)}, expectErr: "not supported"},
		{name: "Missing max", cfg: &OptimizerConfig{}, expectErr: "maximum bound"},
		{name: "Negative min", cfg: &OptimizerConfig{Min: floatPtr(-1), Max: floatPtr(10)}, expectErr: "must not be negative"},
		{name: "Inverted bounds", cfg: &OptimizerConfig{Min: floatPtr(10), Max: floatPtr(10)}, expectErr: "must be less than maximum"},
		{name: "Infinite max", cfg: &OptimizerConfig{Max: floatPtr(math.Inf(1))}, expectErr: "maximum must be a finite number"},
		{name: "NaN max", cfg: &OptimizerConfig{Max: floatPtr(math.NaN())}, expectErr: "maximum must be a finite number"},
		{name: "Infinite min", cfg: &OptimizerConfig{Min: floatPtr(math.Inf(-1)), Max: floatPtr(10)}, expectErr: "minimum must be a finite number"},
		{name: "NaN tolerance", cfg: &OptimizerConfig{Max: floatPtr(10), Tolerance: math.NaN()}, expectErr: "tolerance must be a finite number"},
		{name: "Infinite tolerance", cfg: &OptimizerConfig{Max: floatPtr(10), Tolerance: math.Inf(1)}, expectErr: "tolerance must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.expectErr) {
				t.Fatalf("Validate() error = %v, expected it to contain %q", err, tt.expectErr)
			}
		})
	}
}

func TestLoadConfigurationOptimizer(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(`
applications:
  - name: car
    active: true
    loanCategory: car
    grossAnnualIncome: 90000
    creditScore: 750
    optimizer:
      target: approved
      max: 60000
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	app := conf.Applications[0]
	if app.Optimizer == nil || app.Optimizer.Max == nil || *app.Optimizer.Max != 60000 {
		t.Fatalf("optimizer not decoded: %+v", app.Optimizer)
	}
	if app.GrossAnnualIncome != 90000 {
		t.Fatalf("request fields lost alongside optimizer: %+v", app.Request)
	}
}

func TestLoadConfigurationInvalidOptimizer(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader(`
applications:
  - name: car
    active: true
    optimizer:
      target: approved
`))
	if err == nil || !strings.Contains(err.Error(), "application car") {
		t.Fatalf("expected optimizer validation error naming the application, got %v", err)
	}
}
