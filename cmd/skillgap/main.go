// Command skillgap compares student CVs against indexed job descriptions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/ai"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/cli"
	"github.com/custodia-labs/skillgap/internal/app"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/services"
)

func main() {
	// API keys may come from a .env file in the working directory.
	_ = godotenv.Load()

	store, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config: %v\n", err)
		os.Exit(1)
	}

	cli.SetSettingsService(services.NewSettingsService(store), ai.NewConfigValidator())
	cli.SetAppBuilder(func(ctx context.Context, settings domain.Settings) (*app.App, error) {
		return app.Build(ctx, settings, app.Options{})
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
