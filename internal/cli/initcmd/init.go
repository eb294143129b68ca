// Package initcmd implements "sailup init", which writes a sailup.toml.
package initcmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/sailup/internal/core/config"
	"github.com/nightconcept/sailup/internal/core/installer"
	"github.com/nightconcept/sailup/internal/core/logger"
)

// promptWithDefault prints promptText, reads one line and returns it, or
// defaultValue when the line is empty.
func promptWithDefault(w io.Writer, reader *bufio.Reader, promptText string, defaultValue string) (string, error) {
	if defaultValue != "" {
		_, _ = fmt.Fprintf(w, "%s (default: %s): ", promptText, defaultValue)
	} else {
		_, _ = fmt.Fprintf(w, "%s: ", promptText)
	}

	input, err := reader.ReadString('\n')
	// EOF is treated like an empty line so piped input may stop early.
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input for '%s': %w", promptText, err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected y or n, got %q", s)
}

// NewInitCommand returns the definition for the "init" command. env is used
// to warn about package managers this machine cannot use.
func NewInitCommand(env installer.Env) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a sailup.toml configuration interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: config.FileName,
				Usage: "Write the configuration to `FILE`",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			return initAction(c, env)
		},
	}
}

func initAction(c *cli.Context, env installer.Env) error {
	out := c.App.Writer
	path := c.String("path")
	log := logger.FromContext(c.Context)

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("Error: %s already exists. Use --force to overwrite it.", path), 1)
	}

	headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	pathColor := color.New(color.FgHiBlack, color.Underline).SprintFunc()
	warnColor := color.New(color.FgYellow).SprintFunc()

	_, _ = fmt.Fprintln(out, headerColor("Creating sailup configuration"))

	cfg := config.Default()
	reader := bufio.NewReader(c.App.Reader)

	var err error
	cfg.Install.Tool, err = promptWithDefault(out, reader, "Tool installed by --install-cppcheck", cfg.Install.Tool)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg.Install.Manager, err = promptWithDefault(out, reader, "Package manager (empty to auto-detect)", cfg.Install.Manager)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sudo, err := promptWithDefault(out, reader, "Use sudo for system package managers (y/n)", "y")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if cfg.Install.Sudo, err = parseYesNo(sudo); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	cfg.Log.Level, err = promptWithDefault(out, reader, "Log level", cfg.Log.Level)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg.Update.Source, err = promptWithDefault(out, reader, "Update source (owner/repo)", cfg.Update.Source)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := cfg.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	if m := cfg.Install.Manager; m != "" && !installer.SupportsManager(env.GOOS, m) {
		_, _ = fmt.Fprintf(out, "%s\n", warnColor(fmt.Sprintf("Warning: %s is not a package manager for %s; --install-cppcheck will fail here.", m, env.GOOS)))
	}

	if err := config.Write(path, cfg); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing %s: %v", path, err), 1)
	}
	log.Debug("config written", "path", path)

	_, _ = fmt.Fprintf(out, "\nWrote %s\n", pathColor(path))
	return nil
}
