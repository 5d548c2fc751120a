// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/buihoang/memoria/internal/platform/apperr"
)

// # Format Policy

// Format is a supported upload image format.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// Fixed re-encode policy. Deterministic per format, not configurable per upload.
const jpegQuality = 82

// mimeFormats is the upload allow-list. Anything else fails before file I/O.
var mimeFormats = map[string]Format{
	"image/jpeg": FormatJPEG,
	"image/png":  FormatPNG,
}

// FormatFromMime resolves a declared mimetype against the allow-list.
func FormatFromMime(mimetype string) (Format, error) {
	format, ok := mimeFormats[mimetype]
	if !ok {
		return "", apperr.UnsupportedMedia("Unsupported file type")
	}
	return format, nil
}

// Ext returns the storage key extension for the format.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// # Pipeline

// Result reports the outcome of a processed upload.
type Result struct {
	// Width and Height are the pixel dimensions after orientation
	// normalization (a rotated source reports swapped dimensions).
	Width  int
	Height int

	// Original is the relative path of the full-resolution re-encode.
	Original string

	// Sizes maps each size label to the relative path of its variant.
	// Paths share the storage key basename; only the directory differs.
	Sizes map[string]string
}

// Pipeline derives and persists all resolutions of an uploaded image.
//
// # Concurrency
//
// Pipeline is stateless apart from the media root path and safe for
// concurrent use. Within one call, the original and every breakpoint
// variant are encoded in parallel over the same decoded source — the
// transforms are independent pure functions; the photo record write
// happens only after the whole set has durably succeeded.
type Pipeline struct {
	root string
}

// NewPipeline constructs a [Pipeline] rooted at the media directory.
func NewPipeline(mediaRoot string) *Pipeline {
	return &Pipeline{root: mediaRoot}
}

// EnsureDirs creates the originals and size bucket directories.
//
// MkdirAll is idempotent, so concurrent uploads racing on a fresh
// deployment are harmless.
func (pipeline *Pipeline) EnsureDirs() error {
	dirs := []string{originalsDir}
	for _, width := range Breakpoints {
		dirs = append(dirs, breakpointDir(width))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(pipeline.root, dir), 0o755); err != nil {
			return fmt.Errorf("media: failed to create bucket %s: %w", dir, err)
		}
	}
	return nil
}

/*
Process derives and persists every resolution of an uploaded image.

Description: Validates the mimetype against the allow-list, decodes the
source once with EXIF orientation normalization (re-encoding strips all
remaining metadata for privacy), then writes the canonical original and
one width-constrained variant per breakpoint. Variants never upscale: a
source narrower than a breakpoint is persisted at its native width.

Parameters:
  - context: context.Context (cancels between encode steps)
  - raw: Uploaded file bytes
  - mimetype: Declared content type (must be image/jpeg or image/png)
  - storageKey: Stable basename shared by every variant

Returns:
  - *Result: Final geometry and relative variant paths
  - error: UnsupportedMedia before any I/O, or the first encode/write
    failure. On failure no usable variant set exists and the caller must
    not create the photo record; already-written files are best-effort
    removed.
*/
func (pipeline *Pipeline) Process(context context.Context, raw []byte, mimetype string, storageKey string) (*Result, error) {
	// Allow-list check happens before any disk access.
	format, err := FormatFromMime(mimetype)
	if err != nil {
		return nil, err
	}

	if err := pipeline.EnsureDirs(); err != nil {
		return nil, err
	}

	// Decode once. AutoOrientation applies the EXIF rotation tag so stored
	// pixels match intended display orientation; the tag itself is not
	// carried into the re-encoded outputs.
	source, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.ValidationError("File is not a decodable image")
	}

	bounds := source.Bounds()
	sourceWidth := bounds.Dx()
	sourceHeight := bounds.Dy()

	result := &Result{
		Width:    sourceWidth,
		Height:   sourceHeight,
		Original: filepath.ToSlash(filepath.Join(originalsDir, storageKey)),
		Sizes:    make(map[string]string, len(Breakpoints)),
	}

	written := make([]string, 0, len(Breakpoints)+1)
	for _, width := range Breakpoints {
		relative := filepath.ToSlash(filepath.Join(breakpointDir(width), storageKey))
		result.Sizes[fmt.Sprintf("%d", width)] = relative
		written = append(written, relative)
	}
	written = append(written, result.Original)

	// Fan out: the original and each variant are independent transforms over
	// the same immutable decoded image. The group wait is the join barrier —
	// the photo record must not be written until every encode has succeeded.
	group, groupCtx := errgroup.WithContext(context)

	group.Go(func() error {
		return pipeline.encode(groupCtx, source, format, result.Original)
	})

	for _, width := range Breakpoints {
		width := width
		group.Go(func() error {
			variant := source
			// Enlargement guard: never resize past the source width.
			if sourceWidth > width {
				variant = imaging.Resize(source, width, 0, imaging.Lanczos)
			}
			return pipeline.encode(groupCtx, variant, format, filepath.Join(breakpointDir(width), storageKey))
		})
	}

	if err := group.Wait(); err != nil {
		// Nothing references these paths yet; remove whatever landed so a
		// retried upload under a new storage key does not leak files.
		for _, relative := range written {
			_ = os.Remove(filepath.Join(pipeline.root, relative))
		}
		return nil, err
	}

	return result, nil
}

// Discard removes a processed variant set whose photo record was never
// created. Best effort: a failed create must not leak files that nothing
// references.
func (pipeline *Pipeline) Discard(result *Result) {
	if result == nil {
		return
	}
	for _, relative := range result.Sizes {
		_ = os.Remove(filepath.Join(pipeline.root, relative))
	}
	_ = os.Remove(filepath.Join(pipeline.root, result.Original))
}

// encode re-encodes one image to disk under the fixed per-format policy.
func (pipeline *Pipeline) encode(context context.Context, source image.Image, format Format, relativePath string) error {
	if err := context.Err(); err != nil {
		return err
	}

	destination := filepath.Join(pipeline.root, relativePath)
	file, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("media: failed to create %s: %w", relativePath, err)
	}

	switch format {
	case FormatPNG:
		err = imaging.Encode(file, source, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		err = imaging.Encode(file, source, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("media: failed to encode %s: %w", relativePath, err)
	}
	return nil
}
