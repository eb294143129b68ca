// Package platform implements "sailup platform", which reports what
// --install-cppcheck would do on this machine.
package platform

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/sailup/internal/core/config"
	"github.com/nightconcept/sailup/internal/core/installer"
	"github.com/nightconcept/sailup/internal/core/logger"
)

// NewPlatformCommand returns the "platform" command bound to env.
func NewPlatformCommand(env installer.Env) *cli.Command {
	return &cli.Command{
		Name:    "platform",
		Aliases: []string{"doctor"},
		Usage:   "Show the detected platform and package manager",
		Action: func(c *cli.Context) error {
			out := c.App.Writer
			cfg := config.FromContext(c.Context)
			log := logger.FromContext(c.Context)

			labelColor := color.New(color.FgCyan, color.Bold).SprintFunc()
			valueColor := color.New(color.FgWhite).SprintFunc()
			okColor := color.New(color.FgGreen).SprintFunc()
			warnColor := color.New(color.FgYellow).SprintFunc()
			cmdColor := color.New(color.FgHiBlack).SprintFunc()

			_, _ = fmt.Fprintf(out, "%s %s/%s\n", labelColor("platform:"), valueColor(env.GOOS), valueColor(env.GOARCH))

			inst := installer.New(env, installer.Options{
				Manager: cfg.Install.Manager,
				Sudo:    cfg.Install.Sudo,
			}, log)

			plan, err := inst.Plan(cfg.Install.Tool)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s %s\n", labelColor("package manager:"), warnColor(err.Error()))
				return cli.Exit("", 1)
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", labelColor("package manager:"), valueColor(plan.Manager.Name))
			_, _ = fmt.Fprintf(out, "%s %s\n", labelColor("install command:"), cmdColor(plan.String()))

			status := warnColor("not installed")
			if inst.Installed(cfg.Install.Tool) {
				status = okColor("installed")
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", labelColor(cfg.Install.Tool+":"), status)
			return nil
		},
	}
}
