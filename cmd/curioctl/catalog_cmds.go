// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/logging"
)

func newValidateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d profiles, %d resources OK\n",
				file, len(f.Profiles), len(f.Resources))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSeedCommand(cli *CLI) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a catalog file directly into the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			db, err := cli.openDB(cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(db)

			result, err := catalog.Seed(cmd.Context(), db, f, logging.WithComponent("seed"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d profiles, %d resources into %s\n",
				result.Profiles, result.Resources, db.GetDatabasePath())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPublishCommand(cli *CLI) *cobra.Command {
	var (
		file           string
		deleteResource string
		deleteProfile  string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish catalog change events to NATS JetStream",
		Long: `Publish catalog change events to the configured catalog topic.

--file publishes one upsert event per profile and resource.
--delete-resource and --delete-profile publish a single delete event.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := publishEvents(file, deleteResource, deleteProfile, time.Now().UTC())
			if err != nil {
				return err
			}

			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			wmPub, err := catalog.NewNATSPublisher(&cfg.Catalog, logging.NewWatermillLogger())
			if err != nil {
				return err
			}
			pub := catalog.NewPublisher(wmPub, cfg.Catalog.Topic)
			defer closeQuietly(pub)

			n, err := pub.PublishAll(cmd.Context(), events)
			fmt.Fprintf(cmd.OutOrStdout(), "published %d/%d events to %s\n", n, len(events), cfg.Catalog.Topic)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file to publish as upserts")
	cmd.Flags().StringVar(&deleteResource, "delete-resource", "", "Resource ID to delete")
	cmd.Flags().StringVar(&deleteProfile, "delete-profile", "", "Profile ID to delete")
	cmd.MarkFlagsOneRequired("file", "delete-resource", "delete-profile")
	cmd.MarkFlagsMutuallyExclusive("file", "delete-resource", "delete-profile")
	return cmd
}

// publishEvents builds the events selected by the publish flags.
func publishEvents(file, deleteResource, deleteProfile string, now time.Time) ([]*catalog.Event, error) {
	switch {
	case file != "":
		f, err := catalog.LoadFile(file)
		if err != nil {
			return nil, err
		}
		return f.Events(now), nil
	case deleteResource != "":
		return []*catalog.Event{catalog.NewResourceDeleted(deleteResource, now)}, nil
	case deleteProfile != "":
		return []*catalog.Event{catalog.NewProfileDeleted(deleteProfile, now)}, nil
	default:
		return nil, errors.New("nothing to publish")
	}
}
