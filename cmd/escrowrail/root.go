package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/escrowrail/internal/config"
	"github.com/aretw0/escrowrail/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "escrowrail",
	Short: "Escrowrail plans escrow arrangements and settlement rails for deal groups",
	Long: `Escrowrail reads entity profiles, picks an escrow agent, resolves the bank chain
for every payment leg and tracks the release conditions of the escrow.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default escrowrail.yaml when present)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before the config")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("store", "", "Plan store driver: memory, file or redis")
}

// loadRuntime resolves the configuration: defaults, config file, .env and
// ESCROWRAIL_* variables, then flags.
func loadRuntime(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	path, _ := flags.GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		c.LogJSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("store") {
		c.Store.Driver, _ = flags.GetString("store")
		if err := c.Validate(); err != nil {
			return err
		}
	}

	cfg = c
	logger = logging.NewWithWriter(os.Stderr, logging.ParseLevel(c.LogLevel), c.LogJSON)
	slog.SetDefault(logger)
	return nil
}
