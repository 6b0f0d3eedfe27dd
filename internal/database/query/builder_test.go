// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package query

import (
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
		args     int
	}{
		{name: "nil skipped", values: nil, expected: "1=1", args: 0},
		{name: "empty matches nothing", values: []string{}, expected: "1=0", args: 0},
		{name: "single", values: []string{"Both"}, expected: "lower(lang) IN (?)", args: 1},
		{name: "multiple", values: []string{"FR", "EN", "Both"}, expected: "lower(lang) IN (?, ?, ?)", args: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder().AddIn("lang", tt.values)
			whereClause, args := wb.Build()
			if whereClause != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, whereClause)
			}
			if len(args) != tt.args {
				t.Errorf("Expected %d args, got %d", tt.args, len(args))
			}
		})
	}
}

func TestWhereBuilder_AddInOrNull(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{name: "nil skipped", values: nil, expected: "1=1"},
		{name: "empty keeps only nulls", values: []string{}, expected: "level IS NULL"},
		{name: "two levels", values: []string{"Beginner", "Intermediate"}, expected: "(level IS NULL OR lower(level) IN (?, ?))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whereClause, _ := NewWhereBuilder().AddInOrNull("level", tt.values).Build()
			if whereClause != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, whereClause)
			}
		})
	}
}

func TestWhereBuilder_AddMaxOrNull(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddMaxOrNull("duration_minutes", nil)
	if whereClause, _ := wb.Build(); whereClause != "1=1" {
		t.Fatalf("nil max should be skipped, got %q", whereClause)
	}

	ceiling := 180
	wb.AddMaxOrNull("duration_minutes", &ceiling)

	whereClause, args := wb.Build()
	expected := "(duration_minutes IS NULL OR duration_minutes <= ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 1 || args[0] != 180 {
		t.Errorf("Expected args [180], got %v", args)
	}
}

func TestWhereBuilder_ArgumentOrder(t *testing.T) {
	ceiling := 180
	wb := NewWhereBuilder().
		AddIn("lang", []string{"FR", "Both"}).
		AddInOrNull("level", []string{"Beginner", "Intermediate"}).
		AddMaxOrNull("duration_minutes", &ceiling)

	whereClause, args := wb.BuildWithPrefix()
	expected := "WHERE lower(lang) IN (?, ?) AND (level IS NULL OR lower(level) IN (?, ?)) AND (duration_minutes IS NULL OR duration_minutes <= ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}

	want := []interface{}{"fr", "both", "beginner", "intermediate", 180}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestWhereBuilder_FoldsCase(t *testing.T) {
	whereClause, args := NewWhereBuilder().AddIn("lang", []string{"FR", "fr", "Both"}).Build()
	if whereClause != "lower(lang) IN (?, ?, ?)" {
		t.Errorf("got %q", whereClause)
	}
	for i, want := range []string{"fr", "fr", "both"} {
		if args[i] != want {
			t.Errorf("args[%d] = %v, want %q", i, args[i], want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	tests := map[int]string{
		0: "",
		1: "?",
		3: "?, ?, ?",
	}
	for n, want := range tests {
		if got := Placeholders(n); got != want {
			t.Errorf("Placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestVarcharList(t *testing.T) {
	if got := VarcharList(0); got != "CAST([] AS VARCHAR[])" {
		t.Errorf("VarcharList(0) = %q", got)
	}
	if got := VarcharList(2); got != "CAST(list_value(?::VARCHAR, ?::VARCHAR) AS VARCHAR[])" {
		t.Errorf("VarcharList(2) = %q", got)
	}
}
