// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("lang", []string{"FR", "Both"})
//	wb.AddInOrNull("level", []string{"Beginner", "Intermediate"})
//	whereClause, args := wb.Build()
//	// lower(lang) IN (?, ?) AND (level IS NULL OR lower(level) IN (?, ?))
//	// args: fr, both, beginner, intermediate
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddIn adds "lower(column) IN (?, ...)". Matching ignores case. Rows where
// column is NULL never match. A nil slice is skipped. An empty non-nil slice
// matches nothing.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if values == nil {
		return wb
	}
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("lower(%s) IN (%s)", column, wb.bind(values)))
	return wb
}

// AddInOrNull adds "(column IS NULL OR lower(column) IN (?, ...))". Matching
// ignores case. A nil slice is skipped.
func (wb *WhereBuilder) AddInOrNull(column string, values []string) *WhereBuilder {
	if values == nil {
		return wb
	}
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, column+" IS NULL")
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("(%s IS NULL OR lower(%s) IN (%s))", column, column, wb.bind(values)))
	return wb
}

// AddMaxOrNull adds "(column IS NULL OR column <= ?)". A nil max is skipped.
func (wb *WhereBuilder) AddMaxOrNull(column string, maxValue *int) *WhereBuilder {
	if maxValue == nil {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("(%s IS NULL OR %s <= ?)", column, column))
	wb.args = append(wb.args, *maxValue)
	return wb
}

// bind appends values lower-cased to match the lower(column) side.
func (wb *WhereBuilder) bind(values []string) string {
	for _, v := range values {
		wb.args = append(wb.args, strings.ToLower(v))
	}
	return Placeholders(len(values))
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Placeholders returns n comma-separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// VarcharList returns a SQL expression building a VARCHAR[] from n bound
// parameters. n == 0 yields a typed empty list.
//
//	query.VarcharList(2) // CAST(list_value(?::VARCHAR, ?::VARCHAR) AS VARCHAR[])
func VarcharList(n int) string {
	if n <= 0 {
		return "CAST([] AS VARCHAR[])"
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?::VARCHAR"
	}
	return fmt.Sprintf("CAST(list_value(%s) AS VARCHAR[])", strings.Join(parts, ", "))
}
