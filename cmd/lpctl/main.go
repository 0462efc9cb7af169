package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/learningpath-api/internal/app"
	"github.com/noah-isme/learningpath-api/internal/cli"
	"github.com/noah-isme/learningpath-api/pkg/config"
	"github.com/noah-isme/learningpath-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	application, err := app.New(cfg, logr)
	if err != nil {
		return err
	}
	defer application.Close() //nolint:errcheck

	root := cli.NewRootCmd(&cli.App{
		Paths:  application.LearningPaths,
		Tokens: application.Auth,
		Out:    os.Stdout,
	})
	return root.Execute()
}
