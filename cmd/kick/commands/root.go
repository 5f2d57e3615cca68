// Package commands implements the CLI commands for kick.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/kick/internal/config"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/logging"
	"github.com/thoreinstein/kick/internal/platform"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to an extra log file.
var logFile string

// cfgFile holds the value of the --config flag.
var cfgFile string

// runLog is the per-run JSON log file, closed when Execute returns.
var runLog *logging.RunLog

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to an extra file in JSON format")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (highest priority, above ./"+config.FileName+" and ~/"+config.FileName+")")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("kick version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// initViper wires environment overrides: every flag below can also be
// set as KICK_<NAME>, e.g. KICK_LOG_FORMAT=json, and registry mirrors
// can be overridden with KICK_REGISTRY_NPM and friends.
func initViper() {
	viper.SetEnvPrefix("KICK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

var rootCmd = &cobra.Command{
	Use:   "kick",
	Short: "Bootstrap a development machine in one command",
	Long: `kick installs and upgrades a curated set of development tools on a
fresh machine: runtimes (nvm, node, conda, bun, uv), the GitHub CLI,
and AI coding assistants (claude-code, codex, copilot, opencode,
spec-kit, bmad-method, uipro).

Tools install in dependency order and each one is verified, installed
or skipped, and reported independently, so one failure never blocks the
rest. Configuration cascades from built-in defaults through ~/` + config.FileName + `,
./` + config.FileName + `, and the --config flag.`,
	Example: `  # Install everything with the default configuration
  kick init

  # Pick tools interactively and save the choices
  kick init --interactive --save-config

  # See what would happen without touching the machine
  kick init --dry-run

  # Upgrade only what is already installed
  kick upgrade --all`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
// Terminal output honors the flags; the per-run log file always keeps
// everything down to Debug.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return kickerrors.NewConfigError(
			errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch viper.GetString("debug") {
			case "1", "true":
				v = 1
			case "2":
				v = 2
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(viper.GetString("log-format")) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	rl, err := logging.OpenRunLog(time.Now())
	if err == nil {
		runLog = rl
		handlers = append(handlers, rl.Handler())
	}

	if extra := viper.GetString("log-file"); extra != "" {
		f, err := os.OpenFile(extra, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return kickerrors.NewConfigError(errors.Wrap(err, "opening log file"), extra)
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// configLayerPaths returns the cascade's file layers in priority order:
// cli override, project dotfile, user dotfile. Paths may not exist.
func configLayerPaths() (cli, project, user string, err error) {
	user, err = config.UserConfigPath()
	if err != nil {
		return "", "", "", kickerrors.NewConfigError(err, "")
	}
	cli = cfgFile
	if cli == "" {
		cli = viper.GetString("config")
	}
	return cli, config.FileName, user, nil
}

// loadConfig merges the config cascade and validates the result.
func loadConfig() (*config.Config, error) {
	cliPath, projectPath, userPath, err := configLayerPaths()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithPriority(cliPath, projectPath, userPath)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if problems := config.Validate(cfg); len(problems) > 0 {
		return nil, kickerrors.NewConfigError(
			errors.Newf("invalid configuration:\n  %s", strings.Join(problems, "\n  ")), "")
	}
	return cfg, nil
}

// applyEnvOverrides lets KICK_REGISTRY_* variables win over every file
// layer, matching the cascade's "most specific source wins" rule.
func applyEnvOverrides(cfg *config.Config) {
	for key, field := range map[string]**string{
		"registry.npm":            &cfg.Registry.NPM,
		"registry.bun":            &cfg.Registry.Bun,
		"registry.pypi":           &cfg.Registry.PyPI,
		"registry.python_install": &cfg.Registry.PythonInstall,
	} {
		if v := viper.GetString(key); v != "" {
			*field = &v
		}
	}
}

// requirePlatform detects the host and rejects unsupported combinations.
func requirePlatform() (platform.Info, error) {
	p := platform.Detect()
	if !p.Supported() {
		return p, kickerrors.NewPlatformError(string(p.OS), string(p.Arch))
	}
	return p, nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so installers stop at the next command boundary.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = runLog.Close() }()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && ctx.Err() != nil {
		var exitErr *kickerrors.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != kickerrors.ExitInterrupt {
			err = kickerrors.NewInterruptError()
		}
	}
	return err
}
