// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package album

import "time"

// Album is an ordered, curated collection of photos.
//
// Membership order is explicit: each member carries a 1-based position
// assigned at attach time. There is no implicit recency ordering inside
// an album.
type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// PhotoCount and CoverPhotoID are listing decorations computed from
	// membership; the cover is the member at position 1.
	PhotoCount   int    `json:"photo_count"`
	CoverPhotoID string `json:"cover_photo_id,omitempty"`
}
