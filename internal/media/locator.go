// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package media

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/buihoang/memoria/internal/platform/constants"
)

// # Locator

// PhotoSource supplies the storage key for a photo record.
//
// The locator deliberately knows nothing about authorization: callers must
// have already passed the access check before resolving a location.
type PhotoSource interface {
	StorageKey(ctx context.Context, photoID string) (string, error)
}

// Location is a resolved media file reference, ready to hand to the
// fronting static file server.
type Location struct {
	// RelativePath is the path under the media root (e.g. "size_320/abc.jpg").
	RelativePath string
	// ContentType is the MIME type derived from the storage key extension.
	ContentType string
	// CacheControl differs by size: derived variants are immutable and
	// publicly cacheable, originals are not.
	CacheControl string
}

// Locator maps an authorized (size, photo) pair to its on-disk variant.
type Locator struct {
	photos PhotoSource
}

// NewLocator constructs a [Locator] over a photo source.
func NewLocator(photos PhotoSource) *Locator {
	return &Locator{photos: photos}
}

/*
Resolve maps a size label and photo ID to a media file location.

Description: Looks up the photo's storage key and joins it with the size
bucket directory. Every variant of a photo shares the storage key basename,
so no per-size path is persisted — the layout is derivable.

Parameters:
  - ctx: context.Context
  - size: Validated size label (callers parse via [ParseSize] first)
  - photoID: Photo record identifier

Returns:
  - *Location: Relative path plus delivery headers
  - error: NotFound when the photo record does not exist
*/
func (locator *Locator) Resolve(ctx context.Context, size Size, photoID string) (*Location, error) {
	storageKey, err := locator.photos.StorageKey(ctx, photoID)
	if err != nil {
		return nil, err
	}

	cacheControl := constants.CacheControlDerived
	if size.IsOriginal() {
		cacheControl = constants.CacheControlOriginal
	}

	return &Location{
		RelativePath: path.Join(size.Dir(), storageKey),
		ContentType:  contentTypeForKey(storageKey),
		CacheControl: cacheControl,
	}, nil
}

// Redirect hands the file off to the fronting server via internal redirect.
//
// The application never streams media bytes itself: it emits the accel
// header and the static server (mapped to the media root under the internal
// prefix) performs the disk I/O.
func (locator *Locator) Redirect(w http.ResponseWriter, location *Location) {
	w.Header().Set("Content-Type", location.ContentType)
	w.Header().Set("Cache-Control", location.CacheControl)
	w.Header().Set(constants.HeaderAccelRedirect, constants.InternalMediaPrefix+"/"+location.RelativePath)
	w.WriteHeader(http.StatusOK)
}

// contentTypeForKey derives the MIME type from the storage key extension.
func contentTypeForKey(storageKey string) string {
	if strings.HasSuffix(storageKey, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
