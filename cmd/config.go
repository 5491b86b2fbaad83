package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage configuration",
	Long:        "View and update configuration settings",
	Annotations: map[string]string{standalone: "true"},
}

var showConfigCmd = &cobra.Command{
	Use:         "show",
	Short:       "Display current configuration",
	Annotations: map[string]string{standalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.Path(dir))
		fmt.Printf("%s %s\n", labelStyle.Render("API URL:"), valueStyle.Render(cfg.APIURL))
		fmt.Printf("%s %s\n", labelStyle.Render("HTTP Timeout:"), valueStyle.Render(cfg.HTTPTimeout.String()))
		fmt.Printf("%s %s\n", labelStyle.Render("Status Actions:"), valueStyle.Render(string(cfg.Variant())))
		fmt.Printf("%s %s / %s\n", labelStyle.Render("Logging:"), cfg.LogLevel, cfg.LogFormat)
		fmt.Printf("%s %s\n", labelStyle.Render("Database:"), valueStyle.Render(cfg.DBPath))
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:         "set",
	Short:       "Update a configuration value",
	Annotations: map[string]string{standalone: "true"},
	Example: `  hireboard config set --key api_url --value https://jobs.example.com
  hireboard config set --key status_variant --value narrow
  hireboard config set --key http_timeout --value 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")
		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		dir, err := config.Dir()
		if err != nil {
			return err
		}
		if err := config.Set(dir, key, value); err != nil {
			return fmt.Errorf("error updating config: %w", err)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
