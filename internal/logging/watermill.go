// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package logging

import (
	"sort"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillLogger adapts zerolog to watermill.LoggerAdapter so the catalog
// subscriber and publisher log through the service logger.
type WatermillLogger struct {
	logger zerolog.Logger
}

// NewWatermillLogger returns an adapter over the global logger tagged with
// component=watermill.
func NewWatermillLogger() *WatermillLogger {
	return &WatermillLogger{logger: WithComponent("watermill")}
}

// NewWatermillLoggerWithLogger returns an adapter over logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatermillLoggerWithLogger(logger zerolog.Logger) *WatermillLogger {
	return &WatermillLogger{logger: logger}
}

// Error implements watermill.LoggerAdapter.
func (w *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	addFields(w.logger.Error().Err(err), fields).Msg(msg)
}

// Info implements watermill.LoggerAdapter.
func (w *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	addFields(w.logger.Info(), fields).Msg(msg)
}

// Debug implements watermill.LoggerAdapter.
func (w *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	addFields(w.logger.Debug(), fields).Msg(msg)
}

// Trace implements watermill.LoggerAdapter.
func (w *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	addFields(w.logger.Trace(), fields).Msg(msg)
}

// With implements watermill.LoggerAdapter.
func (w *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.logger.With()
	for _, k := range sortedKeys(fields) {
		ctx = ctx.Interface(k, fields[k])
	}
	return &WatermillLogger{logger: ctx.Logger()}
}

func addFields(event *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for _, k := range sortedKeys(fields) {
		event = event.Interface(k, fields[k])
	}
	return event
}

// sortedKeys keeps field order stable across log lines.
func sortedKeys(fields watermill.LogFields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ watermill.LoggerAdapter = (*WatermillLogger)(nil)
