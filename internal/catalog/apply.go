// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/curio/internal/recommend"
)

// Store is the write side of the catalog. *database.DB implements it.
type Store interface {
	UpsertResource(ctx context.Context, r *recommend.Resource) error
	DeleteResource(ctx context.Context, id string) (bool, error)
	UpsertProfile(ctx context.Context, p *recommend.UserProfile) error
	DeleteProfile(ctx context.Context, id string) (bool, error)
}

// Apply writes one validated event to store. Deleting a record that does
// not exist returns ErrNotFound.
func Apply(ctx context.Context, store Store, e *Event) error {
	switch e.Type {
	case EventResourceUpserted:
		if err := store.UpsertResource(ctx, e.Resource); err != nil {
			return fmt.Errorf("upsert resource %s: %w", e.Resource.ID, err)
		}
	case EventProfileUpserted:
		if err := store.UpsertProfile(ctx, e.Profile); err != nil {
			return fmt.Errorf("upsert profile %s: %w", e.Profile.ID, err)
		}
	case EventResourceDeleted:
		return deleteResult(store.DeleteResource(ctx, e.ID))
	case EventProfileDeleted:
		return deleteResult(store.DeleteProfile(ctx, e.ID))
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}

func deleteResult(deleted bool, err error) error {
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
