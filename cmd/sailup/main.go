// Command sailup computes factorials and can install cppcheck through the
// system package manager.
package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/sailup/internal/cli/root"
	"github.com/nightconcept/sailup/internal/core/installer"
	"github.com/nightconcept/sailup/internal/core/logger"
)

func main() {
	app := root.NewApp(installer.HostEnv())

	err := app.Run(os.Args)
	if err == nil {
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}

	log, lerr := logger.New(os.Stderr, logger.DefaultLevel)
	if lerr != nil {
		log = logger.Discard()
	}
	log.Error("unhandled error in main", "error", err)
	os.Exit(1)
}
