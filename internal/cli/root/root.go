// Package root builds the sailup application: the top-level flags and the
// subcommands hanging off it.
package root

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/sailup/internal/buildinfo"
	"github.com/nightconcept/sailup/internal/cli/initcmd"
	"github.com/nightconcept/sailup/internal/cli/platform"
	"github.com/nightconcept/sailup/internal/cli/self"
	"github.com/nightconcept/sailup/internal/core/config"
	"github.com/nightconcept/sailup/internal/core/factorial"
	"github.com/nightconcept/sailup/internal/core/installer"
	"github.com/nightconcept/sailup/internal/core/logger"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

const (
	flagMessage         = "message"
	flagVersion         = "version"
	flagTurnBased       = "turn_based"
	flagLoopBased       = "loop_based"
	flagInstallCppcheck = "install-cppcheck"
	flagNumber          = "number"
	flagConfig          = "config"
	flagLogLevel        = "log-level"
)

// NewApp returns the sailup application bound to env.
func NewApp(env installer.Env) *cli.App {
	return &cli.App{
		Name:  buildinfo.Name,
		Usage: buildinfo.Description(),
		// --version is handled by before so it can print the bare version.
		Version:     buildinfo.Version,
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagMessage,
				Aliases: []string{"m"},
				Usage:   "A message to print back out",
			},
			&cli.BoolFlag{
				Name:  flagVersion,
				Usage: "Show version information",
			},
			&cli.BoolFlag{
				Name:  flagTurnBased,
				Usage: "Run turn based (excludes --loop_based)",
			},
			&cli.BoolFlag{
				Name:  flagLoopBased,
				Usage: "Run loop based (excludes --turn_based)",
			},
			&cli.BoolFlag{
				Name:  flagInstallCppcheck,
				Usage: "Install cppcheck with the system package manager",
			},
			&cli.IntFlag{
				Name:    flagNumber,
				Aliases: []string{"n"},
				Usage:   fmt.Sprintf("Compute the factorial of `N` (0 to %d)", factorial.MaxInput),
			},
			&cli.StringFlag{
				Name:  flagConfig,
				Value: config.FileName,
				Usage: "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level: debug, info, warn or error (overrides the config file)",
				EnvVars: []string{"SAILUP_LOG_LEVEL"},
			},
		},
		Before: before,
		Action: func(c *cli.Context) error {
			return run(c, env)
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return cli.Exit(fmt.Sprintf("Error: %v", err), exitUsage)
		},
		Commands: []*cli.Command{
			initcmd.NewInitCommand(env),
			platform.NewPlatformCommand(env),
			self.NewSelfCommand(),
		},
	}
}

// before runs ahead of the root action and every subcommand. It answers
// --version, rejects conflicting flags, then loads the config and the logger
// into the shared context.
func before(c *cli.Context) error {
	if c.Bool(flagVersion) {
		_, _ = fmt.Fprintln(c.App.Writer, c.App.Version)
		// Exit code 0 stops urfave/cli from running the action or a subcommand.
		return cli.Exit("", 0)
	}

	if c.Bool(flagTurnBased) && c.Bool(flagLoopBased) {
		return cli.Exit(fmt.Sprintf("Error: --%s and --%s are mutually exclusive", flagTurnBased, flagLoopBased), exitUsage)
	}

	path := c.String(flagConfig)
	var (
		cfg *config.Config
		err error
	)
	if c.IsSet(flagConfig) {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading config: %v", err), exitFailure)
	}

	level := cfg.Log.Level
	if c.IsSet(flagLogLevel) {
		level = c.String(flagLogLevel)
	}
	log, err := logger.New(c.App.ErrWriter, level)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), exitUsage)
	}

	c.Context = config.WithConfig(c.Context, cfg)
	c.Context = logger.WithLogger(c.Context, log)
	return nil
}

func run(c *cli.Context, env installer.Env) error {
	log := logger.FromContext(c.Context)
	cfg := config.FromContext(c.Context)

	if c.IsSet(flagMessage) {
		log.Debug("message received", "message", c.String(flagMessage))
	}
	switch {
	case c.Bool(flagTurnBased):
		log.Debug("mode selected", "mode", flagTurnBased)
	case c.Bool(flagLoopBased):
		log.Debug("mode selected", "mode", flagLoopBased)
	}

	if c.Bool(flagInstallCppcheck) {
		return install(c, env, cfg)
	}

	n := c.Int(flagNumber)
	result, err := factorial.Iterative(n)
	if err != nil {
		log.Error("factorial failed", "n", n, "error", err)
		return cli.Exit("", exitFailure)
	}
	_, _ = fmt.Fprintf(c.App.Writer, "factorial(%d) = %d\n", n, result)
	return nil
}

func install(c *cli.Context, env installer.Env, cfg *config.Config) error {
	log := logger.FromContext(c.Context)
	inst := installer.New(env, installer.Options{
		Manager: cfg.Install.Manager,
		Sudo:    cfg.Install.Sudo,
	}, log)

	err := inst.Install(c.Context, cfg.Install.Tool)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, installer.ErrUnsupportedPlatform),
		errors.Is(err, installer.ErrNoPackageManager),
		errors.Is(err, installer.ErrUnknownManager):
		log.Error("cannot install on this platform", "tool", cfg.Install.Tool, "os", env.GOOS, "error", err)
	default:
		log.Error("failed to install", "tool", cfg.Install.Tool, "error", err)
	}
	return cli.Exit("", exitFailure)
}
