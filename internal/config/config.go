// Package config defines the data structures related to configuration and
// includes functions for loading and validating the applications file.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/prequal/pkg/coerce"
	"github.com/iwvelando/prequal/pkg/prequal"
	"github.com/iwvelando/prequal/pkg/validation"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a prequal evaluation run.
type Configuration struct {
	Logging      LoggingConfig  `yaml:"logging,omitempty" mapstructure:"logging"`
	Output       OutputConfig   `yaml:"output,omitempty" mapstructure:"output"`
	Policy       prequal.Policy `yaml:"policy" mapstructure:"policy"`
	Applications []Application  `yaml:"applications" mapstructure:"applications"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Application is one named pre-qualification request.
type Application struct {
	Name            string `yaml:"name" mapstructure:"name"`
	Active          bool   `yaml:"active" mapstructure:"active"`
	prequal.Request `yaml:",inline" mapstructure:",squash"`

	// Optimizer optionally searches for the largest qualifying loan amount.
	Optimizer *OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// decodeHook keeps viper's default string hooks and adds lenient number
// parsing, so a stray "n/a" or "$30,000" does not reject the whole file.
var decodeHook = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
	coerce.NumberHook(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
))

// decode unmarshals onto the default policy so that only the thresholds the
// file names are overridden.
func decode(v *viper.Viper) (*Configuration, error) {
	configuration := Configuration{Policy: prequal.DefaultPolicy()}
	if err := v.Unmarshal(&configuration, decodeHook); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := validation.ValidatePolicy(configuration.Policy); err != nil {
		return nil, err
	}
	for i := range configuration.Applications {
		app := &configuration.Applications[i]
		if app.Optimizer == nil {
			continue
		}
		if err := app.Optimizer.Validate(); err != nil {
			return nil, fmt.Errorf("application %s: %w", app.Name, err)
		}
	}
	return &configuration, nil
}

// ActiveApplications returns the applications that should be evaluated.
func (c *Configuration) ActiveApplications() []Application {
	var active []Application
	for _, app := range c.Applications {
		if app.Active {
			active = append(active, app)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	apps := make([]validation.ApplicationInfo, 0, len(c.Applications))
	for _, app := range c.Applications {
		apps = append(apps, validation.ApplicationInfo{
			Name:    app.Name,
			Active:  app.Active,
			Request: app.Request,
		})
	}

	validator := validation.ApplicationValidator{Applications: apps}
	return validator.ValidateAll()
}
