// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package media implements the image derivative pipeline and the authorized
media locator.

Architecture:

  - Pipeline: Decodes an upload once, then concurrently re-encodes the
    canonical original and every fixed-width variant to disk.
  - Locator: Maps an already-authorized (size, photoId) pair to the relative
    storage path of the variant.
  - Delivery: The locator never streams bytes. It emits an internal redirect
    header so a fronting static file server performs the actual I/O, keeping
    the trust boundary auditable independent of the delivery mechanism.
*/
package media

import (
	"fmt"

	"github.com/buihoang/memoria/internal/platform/apperr"
)

// # Size Taxonomy

// Size is a fixed resolution label. The enumeration is closed: every media
// URL carries one of exactly four labels.
type Size string

const (
	SizeOriginal Size = "original"
	Size320      Size = "320"
	Size768      Size = "768"
	Size1280     Size = "1280"
)

// Breakpoints are the derivative target widths, ascending. They match the
// gallery frontend's rendering breakpoints (thumb, detail, lightbox).
var Breakpoints = []int{320, 768, 1280}

// originalsDir is the storage bucket for full-resolution re-encodes.
const originalsDir = "originals"

// ParseSize validates a size label from a URL.
//
// Unknown labels are rejected before any record lookup happens — the check
// costs nothing and keeps junk requests away from the database.
func ParseSize(label string) (Size, error) {
	switch Size(label) {
	case SizeOriginal, Size320, Size768, Size1280:
		return Size(label), nil
	}
	return "", apperr.ValidationError("Invalid size label")
}

// Dir returns the storage subdirectory for the size bucket.
func (s Size) Dir() string {
	if s == SizeOriginal {
		return originalsDir
	}
	return "size_" + string(s)
}

// IsOriginal reports whether this is the full-resolution label.
func (s Size) IsOriginal() bool { return s == SizeOriginal }

// breakpointDir returns the bucket directory for a numeric target width.
func breakpointDir(width int) string {
	return fmt.Sprintf("size_%d", width)
}
