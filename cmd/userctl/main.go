package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pathlight/internal/config"
	"github.com/pathlight/internal/repository"
	"github.com/pathlight/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run enables or disables login for one user, addressed by email
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("userctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email of the user")
	active := fs.Bool("active", true, "Whether the user may log in")
	configPath := fs.String("config", "config.yaml", "Path to config file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: userctl -email <email> [-active=false] [-config <path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	// no tokens are issued here
	cfg, err := config.Load(*configPath, config.WithoutJWTSecret())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.Open(cfg.Database, cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), service.NewTokenService(cfg.JWT))

	user, err := authService.SetActiveByEmail(context.Background(), *email, *active)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fmt.Errorf("user %s does not exist", *email)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	fmt.Fprintf(stdout, "User %s %s\n", user.Email, state)
	return nil
}
