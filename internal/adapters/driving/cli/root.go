// Package cli implements the skillgap command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillgap/internal/app"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// AppBuilder creates the application services from merged settings.
type AppBuilder func(ctx context.Context, settings domain.Settings) (*app.App, error)

var (
	settingsService driving.SettingsService
	configValidator driven.AIConfigValidator
	appBuilder      AppBuilder

	// application is built on first use so settings commands work
	// without a reachable vector store.
	application *app.App
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "skillgap",
	Short: "Compare a CV against the job market",
	Long: `skillgap indexes job descriptions and student CVs into a vector store,
retrieves the postings closest to a target role and asks an LLM for a
skill gap report with a learning roadmap.

Typical flow:
  skillgap ingest
  skillgap analyze --role "Data Scientist" --cv data/student_cvs/my_cv.txt`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug output")
}

// SetSettingsService sets the settings service and the provider validator.
func SetSettingsService(svc driving.SettingsService, validator driven.AIConfigValidator) {
	settingsService = svc
	configValidator = validator
}

// SetAppBuilder sets the function used to create the application services.
func SetAppBuilder(builder AppBuilder) {
	appBuilder = builder
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeApp()

	return rootCmd.ExecuteContext(ctx)
}

// requireApp returns the application services, building them on first use.
func requireApp(ctx context.Context) (*app.App, error) {
	if application != nil {
		return application, nil
	}
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	if appBuilder == nil {
		return nil, errors.New("application services not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	a, err := appBuilder(ctx, *settings)
	if err != nil {
		return nil, err
	}
	application = a
	return application, nil
}

func closeApp() {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	application = nil
}
