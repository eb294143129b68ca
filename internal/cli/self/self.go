package self

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/sailup/internal/buildinfo"
	"github.com/nightconcept/sailup/internal/core/config"
	"github.com/nightconcept/sailup/internal/core/logger"
)

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the sailup CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update sailup to the latest version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo' (e.g., 'nightconcept/sailup')",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
				},
				Action: updateAction,
			},
		},
	}
}

// resolveSource picks the repository slug: the --source flag wins over the
// config file, which wins over the built-in default.
func resolveSource(flagValue string, cfg *config.Config) (string, error) {
	slug := flagValue
	if slug == "" {
		slug = cfg.Update.Source
	}
	if slug == "" {
		slug = config.DefaultUpdateSource
	}
	if _, _, err := config.SplitSource(slug); err != nil {
		return "", fmt.Errorf("invalid update source: %w", err)
	}
	return slug, nil
}

// confirmed reads one line and reports whether it is a yes.
func confirmed(reader *bufio.Reader) bool {
	input, _ := reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return true
	}
	return false
}

func updateAction(c *cli.Context) error {
	out := c.App.Writer
	log := logger.FromContext(c.Context)
	verbose := c.Bool("verbose")
	currentVersionStr := c.App.Version
	if currentVersionStr == "" {
		currentVersionStr = buildinfo.Version
	}

	versionColor := color.New(color.FgGreen, color.Bold).SprintFunc()

	currentSemVer, err := buildinfo.ParseVersion(currentVersionStr)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error parsing current version '%s': %v. Ensure version is like vX.Y.Z or X.Y.Z.", currentVersionStr, err), 1)
	}
	if verbose {
		_, _ = fmt.Fprintf(out, "Running %s\n", buildinfo.String())
		_, _ = fmt.Fprintf(out, "Parsed current semantic version: %s\n", currentSemVer.String())
	}

	repoSlug, err := resolveSource(c.String("source"), config.FromContext(c.Context))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if verbose {
		_, _ = fmt.Fprintf(out, "Using GitHub source: %s\n", repoSlug)
	}

	// For standard GitHub, GitHubConfig can be empty.
	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: ghSource,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	log.Debug("checking for latest release", "source", repoSlug, "current", currentSemVer.String())
	latestRelease, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}

	if !found {
		_, _ = fmt.Fprintf(out, "Current version %s is already the latest.\n", currentVersionStr)
		return nil
	}

	if verbose {
		_, _ = fmt.Fprintf(out, "Latest version detected: %s (Release URL: %s)\n", latestRelease.Version(), latestRelease.URL)
		if latestRelease.ReleaseNotes != "" {
			_, _ = fmt.Fprintf(out, "Release Notes:\n%s\n", latestRelease.ReleaseNotes)
		}
	}

	if !latestRelease.GreaterThan(currentSemVer.String()) {
		_, _ = fmt.Fprintf(out, "Current version %s is already the latest or newer.\n", currentVersionStr)
		return nil
	}

	_, _ = fmt.Fprintf(out, "New version available: %s (current: %s)\n", versionColor(latestRelease.Version()), currentVersionStr)

	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") {
		_, _ = fmt.Fprint(out, "Do you want to update? (y/N): ")
		if !confirmed(bufio.NewReader(c.App.Reader)) {
			_, _ = fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	_, _ = fmt.Fprintf(out, "Updating to %s...\n", latestRelease.Version())
	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	log.Debug("replacing executable", "path", execPath)

	if err := updater.UpdateTo(c.Context, latestRelease, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	_, _ = fmt.Fprintf(out, "Successfully updated to version %s.\n", versionColor(latestRelease.Version()))
	return nil
}
