// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/logging"
)

// CLI holds state shared by every subcommand.
type CLI struct {
	configPath string
	dbPath     string
	logLevel   string
}

// NewRootCommand builds the curioctl command tree.
func NewRootCommand() *cobra.Command {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:           "curioctl",
		Short:         "Operate a Curio recommendation service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:     cli.logLevel,
				Format:    "console",
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Config file (default: CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&cli.dbPath, "db", "", "DuckDB path, overrides database.path")
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newSeedCommand(cli))
	rootCmd.AddCommand(newPublishCommand(cli))
	rootCmd.AddCommand(newRecommendCommand(cli))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig reads the service configuration the same way the server does,
// from --config when given.
func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	return cfg, nil
}

// openDB opens the configured database.
func (c *CLI) openDB(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
	}
	return db, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("Close failed")
	}
}
