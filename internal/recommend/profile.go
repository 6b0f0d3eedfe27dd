// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Resolver turns an optional user identifier into a profile.
type Resolver struct {
	store  ProfileStore
	logger zerolog.Logger
}

// NewResolver creates a profile resolver backed by store.
// A nil store resolves every request anonymously.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(store ProfileStore, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger.With().Str("component", "profile_resolver").Logger(),
	}
}

// Resolve returns the profile for userID.
//
// It returns (nil, false, nil) for an empty identifier and (nil, true, nil)
// when the identifier is unknown. Any other store failure is returned wrapped
// so callers can tell it apart from a miss.
func (r *Resolver) Resolve(ctx context.Context, userID string) (profile *UserProfile, missed bool, err error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || r.store == nil {
		return nil, false, nil
	}

	profile, err = r.store.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		r.logger.Debug().Str("user_id", userID).Msg("profile not found, falling back to anonymous")
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup profile %q: %w", userID, err)
	}
	if profile == nil {
		return nil, true, nil
	}

	return profile, false, nil
}
