package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/termflow/termflow/internal/cli"
	"github.com/termflow/termflow/internal/config"
	"github.com/termflow/termflow/internal/id"
	"github.com/termflow/termflow/internal/logging"
	"github.com/termflow/termflow/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	action := cli.Parse(os.Args[1:], os.Stdout, os.Stderr)
	launch, ok := action.(cli.Launch)
	if !ok {
		return action.(cli.Exit).Code
	}

	cfg := config.LoadOrDefault()

	logger, closeLog, err := logging.Open(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		// Diagnostics are best-effort; the session matters more.
		logger = zap.NewNop()
		closeLog = func() {}
	}
	defer closeLog()
	logger = logger.With(zap.String("session", string(id.NewSessionID())))

	sess := session.New(session.Options{
		Path:     launch.Path,
		Args:     launch.Args,
		Stdout:   os.Stdout,
		Terminal: os.Stdin,
		Report:   os.Stderr,
		Config:   cfg,
		Logger:   logger,
	})
	if err := sess.Run(); err != nil {
		logger.Error("session failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "termflow: %v\n", err)
		return 1
	}
	return 0
}
