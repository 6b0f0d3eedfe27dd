// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/validation"
)

// EventType names a catalog change.
type EventType string

// Catalog change events published by the CMS.
const (
	EventResourceUpserted EventType = "resource.upserted"
	EventResourceDeleted  EventType = "resource.deleted"
	EventProfileUpserted  EventType = "profile.upserted"
	EventProfileDeleted   EventType = "profile.deleted"
)

// Event is the envelope for one catalog change. Exactly one of Resource,
// Profile or ID is set, depending on Type.
type Event struct {
	EventID    string                 `json:"event_id" validate:"required,notblank,max=128"`
	Type       EventType              `json:"type" validate:"required,oneof=resource.upserted resource.deleted profile.upserted profile.deleted"`
	OccurredAt time.Time              `json:"occurred_at" validate:"required"`
	Resource   *recommend.Resource    `json:"resource,omitempty"`
	Profile    *recommend.UserProfile `json:"profile,omitempty"`
	ID         string                 `json:"id,omitempty" validate:"omitempty,max=128"`
}

func newEvent(t EventType, now time.Time) *Event {
	return &Event{
		EventID:    uuid.New().String(),
		Type:       t,
		OccurredAt: now.UTC(),
	}
}

// NewResourceUpserted wraps r in a resource.upserted event.
func NewResourceUpserted(r *recommend.Resource, now time.Time) *Event {
	e := newEvent(EventResourceUpserted, now)
	e.Resource = r
	return e
}

// NewResourceDeleted builds a resource.deleted event.
func NewResourceDeleted(id string, now time.Time) *Event {
	e := newEvent(EventResourceDeleted, now)
	e.ID = id
	return e
}

// NewProfileUpserted wraps p in a profile.upserted event.
func NewProfileUpserted(p *recommend.UserProfile, now time.Time) *Event {
	e := newEvent(EventProfileUpserted, now)
	e.Profile = p
	return e
}

// NewProfileDeleted builds a profile.deleted event.
func NewProfileDeleted(id string, now time.Time) *Event {
	e := newEvent(EventProfileDeleted, now)
	e.ID = id
	return e
}

// Validate checks the envelope and that the payload matches the type.
// Every failure wraps ErrInvalidEvent.
func (e *Event) Validate() error {
	if err := validation.Validate(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	switch e.Type {
	case EventResourceUpserted:
		if e.Resource == nil {
			return fmt.Errorf("%w: %s without resource", ErrInvalidEvent, e.Type)
		}
	case EventProfileUpserted:
		if e.Profile == nil {
			return fmt.Errorf("%w: %s without profile", ErrInvalidEvent, e.Type)
		}
	case EventResourceDeleted, EventProfileDeleted:
		if e.ID == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidEvent, e.Type)
		}
	}
	return nil
}

// Subject returns the record ID the event is about.
func (e *Event) Subject() string {
	switch {
	case e.Resource != nil:
		return e.Resource.ID
	case e.Profile != nil:
		return e.Profile.ID
	default:
		return e.ID
	}
}

// MarshalEvent validates and encodes an event.
func MarshalEvent(e *Event) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalEvent decodes and validates an event.
func UnmarshalEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
