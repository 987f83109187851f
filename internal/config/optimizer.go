package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/prequal/pkg/prequal"
)

const (
	OptimizerFieldLoanAmount = "loanAmount"

	OptimizerTargetApproved    = "approved"
	OptimizerTargetConditional = "conditional"

	defaultTolerance     = 1.0
	defaultMaxIterations = 50
)

// OptimizerConfig asks for the largest loan amount between Min and Max that
// still earns the Target verdict.
type OptimizerConfig struct {
	Target        string   `yaml:"target,omitempty" mapstructure:"target" json:"target,omitempty"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min" json:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max" json:"max,omitempty"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance" json:"tolerance,omitempty"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations" json:"maxIterations,omitempty"`
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}

	o.Target = strings.ToLower(strings.TrimSpace(o.Target))
	if o.Target == "" {
		o.Target = OptimizerTargetApproved
	}
	if o.Min == nil {
		zero := 0.0
		o.Min = &zero
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	switch o.Target {
	case OptimizerTargetApproved, OptimizerTargetConditional:
	default:
		return fmt.Errorf("optimizer target %q is not supported", o.Target)
	}

	if o.Max == nil {
		return fmt.Errorf("optimizer requires a maximum bound")
	}
	for _, bound := range []struct {
		name  string
		value float64
	}{{"minimum", *o.Min}, {"maximum", *o.Max}, {"tolerance", o.Tolerance}} {
		if math.IsNaN(bound.value) || math.IsInf(bound.value, 0) {
			return fmt.Errorf("optimizer %s must be a finite number", bound.name)
		}
	}
	if *o.Min < 0 {
		return fmt.Errorf("optimizer minimum %.2f must not be negative", *o.Min)
	}
	if *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.2f must be less than maximum %.2f", *o.Min, *o.Max)
	}
	return nil
}

// TargetStatus returns the weakest verdict the search accepts.
func (o *OptimizerConfig) TargetStatus() prequal.Status {
	if o != nil && o.Target == OptimizerTargetConditional {
		return prequal.StatusConditional
	}
	return prequal.StatusApproved
}
