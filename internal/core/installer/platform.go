package installer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrNoPackageManager    = errors.New("no supported package manager found")
	ErrUnknownManager      = errors.New("unknown package manager")
)

// PackageManager describes how to install a package with one system package manager.
type PackageManager struct {
	Name        string   // Binary looked up on PATH
	InstallArgs []string // Arguments placed before the package name
	NeedsRoot   bool
}

// managers lists the package managers looked up per GOOS, in order of preference.
var managers = map[string][]PackageManager{
	"linux": {
		{Name: "apt-get", InstallArgs: []string{"install", "-y"}, NeedsRoot: true},
		{Name: "dnf", InstallArgs: []string{"install", "-y"}, NeedsRoot: true},
		{Name: "yum", InstallArgs: []string{"install", "-y"}, NeedsRoot: true},
		{Name: "pacman", InstallArgs: []string{"-S", "--noconfirm"}, NeedsRoot: true},
		{Name: "zypper", InstallArgs: []string{"--non-interactive", "install"}, NeedsRoot: true},
		{Name: "apk", InstallArgs: []string{"add"}, NeedsRoot: true},
	},
	"darwin": {
		{Name: "brew", InstallArgs: []string{"install"}},
		{Name: "port", InstallArgs: []string{"install"}, NeedsRoot: true},
	},
	"windows": {
		{Name: "choco", InstallArgs: []string{"install", "-y"}},
		{Name: "scoop", InstallArgs: []string{"install"}},
	},
}

// Managers returns the package managers known for goos, or nil when the
// platform is unsupported.
func Managers(goos string) []PackageManager {
	return managers[goos]
}

// KnownManager reports whether name is a package manager sailup can drive
// on any platform.
func KnownManager(name string) bool {
	for _, pms := range managers {
		for _, pm := range pms {
			if pm.Name == name {
				return true
			}
		}
	}
	return false
}

// SupportsManager reports whether name is a package manager known for goos.
func SupportsManager(goos, name string) bool {
	for _, pm := range Managers(goos) {
		if pm.Name == name {
			return true
		}
	}
	return false
}

// Env is the host as seen by the installer.
type Env struct {
	GOOS     string
	GOARCH   string
	LookPath func(file string) (string, error)
	Runner   Runner
	IsRoot   bool
}

// HostEnv describes the running process.
func HostEnv() Env {
	return Env{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		LookPath: exec.LookPath,
		Runner:   NewExecRunner(os.Stdout, os.Stderr),
		// Geteuid is -1 on windows.
		IsRoot: os.Geteuid() == 0,
	}
}

// Detect picks the package manager to use on env. When preferred is set it
// must name a manager known for env.GOOS and present on PATH; otherwise the
// first manager found on PATH wins.
func Detect(env Env, preferred string) (PackageManager, error) {
	candidates := Managers(env.GOOS)
	if len(candidates) == 0 {
		return PackageManager{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, env.GOOS)
	}

	if preferred != "" {
		for _, pm := range candidates {
			if pm.Name != preferred {
				continue
			}
			if _, err := env.LookPath(pm.Name); err != nil {
				return PackageManager{}, fmt.Errorf("%w: %s is not on PATH", ErrNoPackageManager, pm.Name)
			}
			return pm, nil
		}
		return PackageManager{}, fmt.Errorf("%w %q for %s", ErrUnknownManager, preferred, env.GOOS)
	}

	for _, pm := range candidates {
		if _, err := env.LookPath(pm.Name); err == nil {
			return pm, nil
		}
	}
	return PackageManager{}, fmt.Errorf("%w on %s", ErrNoPackageManager, env.GOOS)
}
