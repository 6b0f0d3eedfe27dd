// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/metrics"
)

const (
	tableProfiles  = "profiles"
	tableResources = "resources"
)

// recordQuery observes one query in the metrics package.
func recordQuery(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

// scanFunc is a function that scans a single row into a result type.
// Returning ok=false skips the row without failing the query.
type scanFunc[T any] func(*sql.Rows) (item T, ok bool, err error)

// queryAndScan executes a query and scans all rows using the provided scan function
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	var results []T
	for rows.Next() {
		item, ok, err := scan(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// stringList converts a scanned VARCHAR[] value to []string. The driver
// returns LIST columns as []any; NULL elements are dropped.
func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, e := range list {
			if e == nil {
				continue
			}
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("list element %d: unexpected type %T", i, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected list type %T", v)
	}
}

// toStrings converts a slice of string-kinded values. nil stays nil so an
// unset filter remains distinguishable from an empty one.
func toStrings[S ~string](values []S) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// listArgs widens a string slice for binding into a VarcharList expression.
func listArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func nullableString[S ~string](v *S) interface{} {
	if v == nil {
		return nil
	}
	return string(*v)
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableTime(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return v.UTC()
}

func emptyToNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
