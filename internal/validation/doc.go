// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process so struct
// metadata is parsed once. It checks records at the storage and ingest
// boundaries:
//   - profiles and resources read back from DuckDB (invalid rows are skipped)
//   - records loaded from a YAML catalog file
//   - catalog events consumed from NATS
//
// # Usage
//
//	if verr := validation.ValidateStruct(&res); verr != nil {
//	    logger.Warn().Strs("fields", verr.Fields()).Msg("Skipping invalid resource row")
//	    continue
//	}
//
// # Custom Tags
//
//   - notblank: string must contain at least one non-space character
package validation
