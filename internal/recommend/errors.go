// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import "errors"

var (
	// ErrProfileNotFound is returned by a ProfileStore when no profile exists.
	// The resolver treats it as an anonymous request, not as a failure.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoResourceStore is returned when the engine has no resource store.
	ErrNoResourceStore = errors.New("resource store not set")
)

// Pipeline stages reported by StageError.
const (
	StageProfile    = "profile"
	StageCandidates = "candidates"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage of a StageError in err's chain, or "".
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
