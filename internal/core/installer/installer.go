// Package installer installs tools through the host's system package manager.
package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrInstallFailed = errors.New("install failed")

// Options tune how the installer picks and invokes the package manager.
type Options struct {
	Manager string // Preferred package manager; empty means auto-detect
	Sudo    bool   // Prefix root-only managers with sudo when not already root
}

// Installer installs tools on one host.
type Installer struct {
	env    Env
	opts   Options
	logger *slog.Logger
}

// Plan is a resolved install: the manager chosen and the argv to execute.
type Plan struct {
	Manager PackageManager
	Argv    []string
}

// String renders the plan as a shell command line.
func (p Plan) String() string {
	return strings.Join(p.Argv, " ")
}

// New returns an Installer for env.
func New(env Env, opts Options, logger *slog.Logger) *Installer {
	return &Installer{env: env, opts: opts, logger: logger}
}

// Plan resolves the command that installs tool without running anything.
func (i *Installer) Plan(tool string) (Plan, error) {
	pm, err := Detect(i.env, i.opts.Manager)
	if err != nil {
		return Plan{}, err
	}

	argv := make([]string, 0, len(pm.InstallArgs)+3)
	if pm.NeedsRoot && !i.env.IsRoot && i.opts.Sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, pm.Name)
	argv = append(argv, pm.InstallArgs...)
	argv = append(argv, tool)

	return Plan{Manager: pm, Argv: argv}, nil
}

// Install installs tool. Planning errors are returned as-is and nothing is
// executed; a failing package manager is reported as ErrInstallFailed.
func (i *Installer) Install(ctx context.Context, tool string) error {
	plan, err := i.Plan(tool)
	if err != nil {
		return err
	}

	i.logger.Info("installing", "tool", tool, "manager", plan.Manager.Name, "command", plan.String())
	if err := i.env.Runner.Run(ctx, plan.Argv[0], plan.Argv[1:]...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInstallFailed, tool, err)
	}
	i.logger.Info("installed", "tool", tool)
	return nil
}

// Installed reports whether tool is already on PATH.
func (i *Installer) Installed(tool string) bool {
	_, err := i.env.LookPath(tool)
	return err == nil
}
