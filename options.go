package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/charcheck/sdk/catalog"
	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// validatorConfig holds the configuration assembled by ValidatorOptions.
type validatorConfig struct {
	adapter    snapshot.Adapter
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	registry   *rule.Registry
	catalogCfg *catalog.Config
	configPath string
	extraRules []rule.Rule
}

// ValidatorOption configures a Validator during construction.
type ValidatorOption func(*validatorConfig)

// WithAdapter sets the scene adapter the validator captures snapshots
// through. Exactly one adapter source is required.
func WithAdapter(adapter snapshot.Adapter) ValidatorOption {
	return func(c *validatorConfig) {
		c.adapter = adapter
	}
}

// WithSceneFile reads the scene description from a YAML file on every
// capture. Convenient for offline validation of exported scenes.
func WithSceneFile(path string) ValidatorOption {
	return func(c *validatorConfig) {
		c.adapter = &snapshot.FileAdapter{Path: path}
	}
}

// WithScene validates a fixed in-memory scene description.
func WithScene(desc snapshot.SceneDesc) ValidatorOption {
	return func(c *validatorConfig) {
		c.adapter = &snapshot.StaticAdapter{Desc: desc}
	}
}

// WithLogger sets the structured logger used by the validator and the
// underlying engine. Defaults to a JSON logger on stdout.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(c *validatorConfig) {
		c.logger = logger
	}
}

// WithTracer enables OpenTelemetry tracing of validation runs.
func WithTracer(tracer trace.Tracer) ValidatorOption {
	return func(c *validatorConfig) {
		c.tracer = tracer
	}
}

// WithMeter enables OpenTelemetry metrics for validation runs.
func WithMeter(meter metric.Meter) ValidatorOption {
	return func(c *validatorConfig) {
		c.meter = meter
	}
}

// WithRegistry replaces the built-in catalog with a caller-assembled rule
// registry. Overrides WithCatalogConfig and WithConfigFile.
func WithRegistry(registry *rule.Registry) ValidatorOption {
	return func(c *validatorConfig) {
		c.registry = registry
	}
}

// WithCatalogConfig builds the built-in catalog from the given
// configuration instead of the defaults.
func WithCatalogConfig(cfg catalog.Config) ValidatorOption {
	return func(c *validatorConfig) {
		c.catalogCfg = &cfg
	}
}

// WithConfigFile loads the catalog configuration from a YAML file. Values
// absent from the file keep their defaults.
func WithConfigFile(path string) ValidatorOption {
	return func(c *validatorConfig) {
		c.configPath = path
	}
}

// WithRules registers additional rules next to the configured catalog.
func WithRules(rules ...rule.Rule) ValidatorOption {
	return func(c *validatorConfig) {
		c.extraRules = append(c.extraRules, rules...)
	}
}
