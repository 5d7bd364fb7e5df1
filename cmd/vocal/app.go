package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/audit"
	"github.com/vocal-dev/vocal/internal/color"
	internalconfig "github.com/vocal-dev/vocal/internal/config"
	"github.com/vocal-dev/vocal/internal/controller"
	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/internal/state"
	"github.com/vocal-dev/vocal/pkg/config"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// app holds the collaborators shared by all commands.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	store    *state.Store
	ctrl     *controller.Controller
	sessions *session.Registry
	auditor  *audit.Logger
}

// newApp loads configuration and wires the state layer. When lenient is
// set a broken config falls back to defaults and the error is logged.
func newApp(cmd *cobra.Command, lenient bool) (*app, error) {
	cfg, cfgErr := loadConfig(cmd)
	if cfgErr != nil {
		if !lenient {
			return nil, cfgErr
		}

		cfg = internalconfig.DefaultConfig()
		applyFlagOverrides(cmd, cfg)
	}

	log := newLogger(cfg)

	if cfgErr != nil {
		log.Error("failed to load configuration, using defaults", "error", cfgErr)
	}

	dir := cfg.GetState().GetDir()
	store := state.NewStore(dir)

	auditCfg := cfg.GetAudit()

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		ctrl:     controller.New(store, controller.WithLogger(log)),
		sessions: session.NewRegistry(cfg.GetState().SessionRegistryFile(), session.WithLogger(log)),
		auditor: audit.NewLogger(
			auditCfg.GetFile(),
			uint64(auditCfg.GetMaxSize()),
			audit.WithLogger(log),
			audit.WithEnabled(auditCfg.IsEnabled()),
		),
	}, nil
}

// close releases the log file.
func (a *app) close() {
	if closer, ok := a.log.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// loadConfig loads configuration from all sources with precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config loader")
	}

	cfg, err := loader.Load(buildFlagsMap(cmd))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	return cfg, nil
}

// buildFlagsMap converts the persistent flags that were set on the command
// line to a map for the config loader.
func buildFlagsMap(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	if configPath != "" {
		flags[internalconfig.FlagConfig] = configPath
	}

	if stateDir != "" {
		flags[internalconfig.FlagStateDir] = stateDir
	}

	if cmd.Flags().Changed("debug") {
		flags[internalconfig.FlagDebug] = debugMode
	}

	if cmd.Flags().Changed("trace") {
		flags[internalconfig.FlagTrace] = traceMode
	}

	return flags
}

// applyFlagOverrides applies the flags to the fallback defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if stateDir != "" {
		cfg.State.Dir = stateDir
	}

	if cmd.Flags().Changed("debug") {
		debug := debugMode
		cfg.Log.Debug = &debug
	}

	cfg.Log.Trace = traceMode
}

// newLogger opens the log file; when it cannot be opened logging is
// disabled rather than failing the command.
func newLogger(cfg *config.Config) logger.Logger {
	logCfg := cfg.GetLog()

	log, err := logger.NewFileLogger(logCfg.GetFile(), logCfg.IsDebug(), logCfg.IsTrace())
	if err != nil {
		return logger.NewNoOpLogger()
	}

	return log
}

// theme returns the color theme for stdout.
func theme() color.Theme {
	return color.NewTheme(color.Profile(noColorFlag) && color.IsTerminal(os.Stdout))
}
