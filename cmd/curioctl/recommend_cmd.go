// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/curio/internal/app"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/recommend"
)

// recommendOutput mirrors the HTTP response body plus the metadata the
// HTTP surface does not expose.
type recommendOutput struct {
	Items    []recommend.Item           `json:"items"`
	Metadata recommend.ResponseMetadata `json:"metadata"`
}

func newRecommendCommand(cli *CLI) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run one recommendation query against the local database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			db, err := cli.openDB(cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(db)

			engine, _, err := app.NewEngine(cfg, db, logging.WithComponent("recommend"))
			if err != nil {
				return err
			}

			resp, err := engine.Recommend(cmd.Context(), recommend.Request{UserID: userID, Limit: limit})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(recommendOutput{Items: resp.Items, Metadata: resp.Metadata})
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Learner ID (empty for anonymous)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of items (0 uses the configured default)")
	return cmd
}
