// Package config decodes the session's YAML configuration document (spec
// §6), following the same flat-struct-plus-explicit-defaults shape as
// bassosimone-nop's Config/NewConfig.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EvalSafety controls how aggressively evaluate requests are screened for
// mutating or dangerous expressions.
type EvalSafety string

const (
	EvalSafetyNone   EvalSafety = "None"
	EvalSafetyBasic  EvalSafety = "Basic"
	EvalSafetyStrict EvalSafety = "Strict"
)

// SourceMapBehavior is the policy applied when a referenced source map is
// missing.
type SourceMapBehavior string

const (
	SourceMapAsk     SourceMapBehavior = "Ask"
	SourceMapLenient SourceMapBehavior = "Lenient"
	SourceMapStrict  SourceMapBehavior = "Strict"
)

// LoggingBackend selects which logiface backend internal/obslog binds at
// startup.
type LoggingBackend string

const (
	LoggingZerolog LoggingBackend = "zerolog"
	LoggingStumpy  LoggingBackend = "stumpy"
	LoggingLogrus  LoggingBackend = "logrus"
)

// SourceMapPreferences groups the source-map-missing policy (spec §6).
type SourceMapPreferences struct {
	DefaultBehavior SourceMapBehavior `yaml:"default_behavior"`
}

// Logging groups observability knobs (ambient, not named by spec.md
// itself, carried per SPEC_FULL.md's ambient-stack requirement).
type Logging struct {
	Backend LoggingBackend `yaml:"backend"`
	Trace   bool           `yaml:"trace"`
}

// Config is the fully decoded, defaulted session configuration.
type Config struct {
	Runtime              string                `yaml:"runtime"`
	Program              string                `yaml:"program"`
	StopOnEntry          bool                  `yaml:"stopOnEntry"`
	Cwd                  string                `yaml:"cwd"`
	Env                  map[string]string     `yaml:"env"`
	EvaluateMutation     bool                  `yaml:"evaluate_mutation"`
	ShowModifications    bool                  `yaml:"show_modifications"`
	EvalSafety           EvalSafety            `yaml:"eval_safety"`
	SourceMapPreferences SourceMapPreferences  `yaml:"source_map_preferences"`
	Logging              Logging               `yaml:"logging"`
}

// Default returns a Config with every field set to its spec-mandated
// default, applied after YAML decode so a partial document only overrides
// the keys it names.
func Default() Config {
	return Config{
		Runtime:           "lua5.4",
		ShowModifications: true,
		EvalSafety:        EvalSafetyBasic,
		SourceMapPreferences: SourceMapPreferences{
			DefaultBehavior: SourceMapLenient,
		},
		Logging: Logging{
			Backend: LoggingZerolog,
		},
	}
}

// Load reads and decodes a YAML document at path over a Default()
// baseline.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(data)
}

// Decode parses a YAML document over a Default() baseline.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
