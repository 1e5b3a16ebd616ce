package sdk

import (
	"context"
	"log/slog"
	"os"

	"github.com/charcheck/sdk/catalog"
	"github.com/charcheck/sdk/engine"
	"github.com/charcheck/sdk/report"
	"github.com/charcheck/sdk/rule"
	"github.com/charcheck/sdk/snapshot"
)

// Validator is the high-level entry point: an engine wired to a scene
// adapter and a rule registry, ready to produce reports.
//
// A Validator serializes runs; concurrent calls beyond the first return
// ErrRunInProgress.
type Validator struct {
	engine   *engine.Engine
	registry *rule.Registry
	logger   *slog.Logger
}

// NewValidator creates a validator for a scene source.
// By default it evaluates the built-in rule catalog with default limits;
// use options to supply a catalog configuration, a custom registry, or
// additional rules.
//
// Example:
//
//	validator, err := sdk.NewValidator(
//	    sdk.WithSceneFile("character.yaml"),
//	    sdk.WithConfigFile("charcheck.yaml"),
//	    sdk.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := validator.Validate(ctx)
func NewValidator(opts ...ValidatorOption) (*Validator, error) {
	cfg := &validatorConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.adapter == nil {
		return nil, NewConfigurationError("NewValidator", ErrNoAdapter)
	}

	registry := cfg.registry
	if registry == nil {
		catCfg := catalog.DefaultConfig()
		switch {
		case cfg.configPath != "":
			loaded, err := catalog.LoadConfig(cfg.configPath)
			if err != nil {
				return nil, NewConfigurationError("NewValidator", err)
			}
			catCfg = loaded
		case cfg.catalogCfg != nil:
			catCfg = *cfg.catalogCfg
		}
		built, err := catalog.NewRegistry(catCfg)
		if err != nil {
			return nil, NewConfigurationError("NewValidator", err)
		}
		registry = built
	}
	if err := registry.RegisterAll(cfg.extraRules...); err != nil {
		return nil, NewConfigurationError("NewValidator", err)
	}

	engOpts := []engine.Option{engine.WithLogger(cfg.logger)}
	if cfg.tracer != nil {
		engOpts = append(engOpts, engine.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		engOpts = append(engOpts, engine.WithMeter(cfg.meter))
	}
	eng, err := engine.New(cfg.adapter, registry, engOpts...)
	if err != nil {
		return nil, NewConfigurationError("NewValidator", err)
	}

	return &Validator{
		engine:   eng,
		registry: registry,
		logger:   cfg.logger,
	}, nil
}

// Validate captures a full snapshot and evaluates every applicable rule.
func (v *Validator) Validate(ctx context.Context) (*report.Report, error) {
	return v.engine.Run(ctx, snapshot.ScopeAll)
}

// ValidateScope validates only the nodes selected by scope. Scene-wide
// rules outside the scope do not run.
func (v *Validator) ValidateScope(ctx context.Context, scope snapshot.Scope) (*report.Report, error) {
	return v.engine.Run(ctx, scope)
}

// Revalidate re-runs validation for the changed node paths and merges the
// result with a previous report. Findings outside the changed subtrees are
// carried over unchanged.
func (v *Validator) Revalidate(ctx context.Context, previous *report.Report, changedPaths ...string) (*report.Report, error) {
	return v.engine.Revalidate(ctx, previous, changedPaths...)
}

// Cancel requests cooperative cancellation of the active run, if any.
// The interrupted run still returns a report, marked incomplete.
func (v *Validator) Cancel() {
	v.engine.Cancel()
}

// State reports the engine lifecycle state.
func (v *Validator) State() engine.State {
	return v.engine.State()
}

// Registry exposes the rule registry backing this validator.
func (v *Validator) Registry() *rule.Registry {
	return v.registry
}
