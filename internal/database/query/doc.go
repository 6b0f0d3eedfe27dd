// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package query provides SQL building helpers for the database package.
//
// WhereBuilder assembles parameterized WHERE clauses. Values are always bound
// as arguments; only column names, which come from code, are interpolated.
//
// Set membership compares lower(column) against lower-cased values, so
// rows written with non-canonical casing still match.
//
// The NULL policy of a clause is chosen by the method:
//   - AddIn: NULL never matches
//   - AddInOrNull: NULL always matches
//   - AddMaxOrNull: NULL always matches
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("lang", langs)
//	wb.AddInOrNull("level", levels)
//	wb.AddMaxOrNull("duration_minutes", maxMinutes)
//	where, args := wb.BuildWithPrefix()
//
// VarcharList produces the expression used to write VARCHAR[] columns from
// bound parameters, since list parameters are not bound directly.
package query
