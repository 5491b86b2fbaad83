package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/logging"
	"github.com/khrees2412/hireboard/internal/mockapi"
)

var mockAPICmd = &cobra.Command{
	Use:         "mock-api",
	Short:       "Run an in-memory job board API for local testing",
	Annotations: map[string]string{standalone: "true"},
	Example: `  hireboard mock-api --seed
  hireboard mock-api --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		seed, _ := cmd.Flags().GetBool("seed")
		level, _ := cmd.Flags().GetString("log-level")

		logger := logging.Init(level, "text")
		srv := mockapi.New(logger)

		if seed {
			boss := srv.AddUser("boss@example.com", "password", "boss", true)
			srv.AddUser("ann@example.com", "password", "ann", false)
			for _, title := range []string{"Backend Engineer", "Product Designer", "Data Analyst"} {
				id := srv.AddJob(boss.ID, title)
				fmt.Printf("  job %d: %s\n", id, title)
			}
			fmt.Println(mutedStyle.Render("  accounts: boss@example.com (employer), ann@example.com (candidate), password \"password\""))
		}

		go func() {
			<-cmd.Context().Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
		}()

		fmt.Printf("✓ Mock API listening on %s\n", addr)
		return srv.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(mockAPICmd)

	mockAPICmd.Flags().String("addr", "127.0.0.1:8000", "Listen address")
	mockAPICmd.Flags().Bool("seed", false, "Create demo accounts and jobs")
	mockAPICmd.Flags().String("log-level", "info", "Request log level")
}
