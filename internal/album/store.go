// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package album

import (
	"context"

	"github.com/buihoang/memoria/pkg/pagination"
)

// Repository defines persistence operations for albums.
//
// It also implements the access-control membership check: the authorizer
// consults [Repository.IsAlbumMember] live on every album-share media read.
type Repository interface {
	// Create persists a new album.
	Create(context context.Context, album *Album) error

	// List returns a page of albums (with photo counts and covers) plus
	// the total album count.
	List(context context.Context, params pagination.Params) ([]*Album, int, error)

	// FindByID returns the album with counts, or a NotFound error.
	FindByID(context context.Context, id string) (*Album, error)

	// AddPhoto appends a photo at the next free position. The position is
	// assigned under an album row lock, so concurrent attaches serialize.
	// Attaching an existing member is a Conflict.
	AddPhoto(context context.Context, albumID, photoID string) error

	// IsAlbumMember reports whether the photo currently belongs to the album.
	IsAlbumMember(context context.Context, albumID, photoID string) (bool, error)
}
