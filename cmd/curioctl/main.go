// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Command curioctl is the operator CLI for Curio. It validates and seeds
// catalog files, publishes catalog change events to NATS JetStream and runs
// one-off recommendation queries against a local database.
//
//	curioctl validate --file catalog.yaml
//	curioctl seed --file catalog.yaml --db /data/curio.duckdb
//	curioctl publish --file catalog.yaml
//	curioctl publish --delete-resource r42
//	curioctl recommend --user u1 --limit 5
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
