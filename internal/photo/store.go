// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package photo

import (
	"context"

	"github.com/buihoang/memoria/pkg/pagination"
)

// ListFilter narrows a photo listing. Zero values mean "no filter".
type ListFilter struct {
	// Query matches against the photo title, case-insensitive substring.
	Query string

	// TagSlug restricts results to photos carrying the tag.
	TagSlug string

	// AlbumID restricts results to members of the album, ordered by the
	// album's explicit position instead of recency.
	AlbumID string
}

// Repository defines persistence operations for photos.
type Repository interface {
	// Create persists the photo, its tag links (connect-or-create by
	// slug), and the optional album membership in a single transaction.
	// The membership position is assigned under an album row lock so
	// concurrent uploads into one album get distinct positions.
	Create(context context.Context, photo *Photo, tagNames []string, albumID string) error

	// List returns a filtered, paginated page of photos (tags included)
	// plus the total count under the same filter.
	List(context context.Context, filter ListFilter, params pagination.Params) ([]*Photo, int, error)

	// FindByID returns the photo with its tags, or a NotFound error.
	FindByID(context context.Context, id string) (*Photo, error)

	// StorageKey returns just the storage key for a photo, or a NotFound
	// error. Used by the media locator on every delivery request.
	StorageKey(context context.Context, photoID string) (string, error)
}
