// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package photo

import (
	"time"

	"github.com/buihoang/memoria/internal/tag"
)

// Visibility marks how a photo was intended to be surfaced. It is stored
// metadata only: read authorization runs on principals and share scopes,
// never on this flag.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityShared  Visibility = "SHARED"
)

// ParseVisibility validates a raw visibility value, defaulting to private.
func ParseVisibility(raw string) (Visibility, bool) {
	switch Visibility(raw) {
	case VisibilityPrivate, VisibilityShared:
		return Visibility(raw), true
	case "":
		return VisibilityPrivate, true
	}
	return "", false
}

// Photo is an uploaded image and the metadata of its derivative set.
//
// Sizes records the relative storage path of every persisted variant,
// keyed by size label. The map is written once at upload time and never
// mutated; a given (photo, size) pair is immutable after creation.
type Photo struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	StorageKey  string            `json:"-"`
	MimeType    string            `json:"mimetype"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Visibility  Visibility        `json:"visibility"`
	Sizes       map[string]string `json:"-"`
	Tags        []tag.Tag         `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`

	// Media maps size labels to API delivery URLs. Populated by the
	// service before the entity leaves the domain layer; clients never
	// see raw storage paths.
	Media map[string]string `json:"media,omitempty"`
}
