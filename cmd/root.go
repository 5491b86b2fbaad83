package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/app"
	"github.com/khrees2412/hireboard/internal/config"
)

// commands carrying this annotation run without the App container
const standalone = "standalone"

// opened is closed by Execute once the command returns
var opened *app.App

var rootCmd = &cobra.Command{
	Use:   "hireboard",
	Short: "Job board client for candidates and employers",
	Long: `Hireboard is a CLI for a job board API. Candidates apply for jobs and answer
offers; employers review the applications to the jobs they posted.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[standalone] == "true" {
			return nil
		}

		dir, err := config.Dir()
		if err != nil {
			return err
		}
		application, err := app.NewApp(cmd.Context(), dir)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		opened = application

		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if opened != nil {
		opened.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// appFrom returns the container set up by the root command
func appFrom(cmd *cobra.Command) *app.App {
	return app.GetAppFromContext(cmd.Context())
}
