// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package media_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/platform/apperr"
)

// testImageJPEG renders a width x height JPEG in memory.
func testImageJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// jpegWithOrientation splices a minimal EXIF APP1 segment carrying the
// given orientation tag into an encoded JPEG, right after the SOI marker.
func jpegWithOrientation(t *testing.T, raw []byte, orientation byte) []byte {
	t.Helper()
	require.Greater(t, len(raw), 2)

	payload := []byte{
		'E', 'x', 'i', 'f', 0x00, 0x00, // EXIF header
		'M', 'M', 0x00, 0x2A, // big-endian TIFF
		0x00, 0x00, 0x00, 0x08, // IFD0 offset
		0x00, 0x01, // one directory entry
		0x01, 0x12, // Orientation tag
		0x00, 0x03, // SHORT
		0x00, 0x00, 0x00, 0x01, // count
		0x00, orientation, 0x00, 0x00, // value + padding
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	segment := []byte{0xFF, 0xE1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}
	segment = append(segment, payload...)

	out := make([]byte, 0, len(raw)+len(segment))
	out = append(out, raw[:2]...)
	out = append(out, segment...)
	out = append(out, raw[2:]...)
	return out
}

// decodeConfig reads just the dimensions of an encoded image on disk.
func decodeConfig(t *testing.T, path string) image.Config {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	require.NoError(t, err)
	return cfg
}

/*
TestPipeline_Process verifies the full derivative set for a large source.
*/
func TestPipeline_Process(t *testing.T) {
	root := t.TempDir()
	pipeline := media.NewPipeline(root)

	raw := testImageJPEG(t, 2000, 1500)
	result, err := pipeline.Process(context.Background(), raw, "image/jpeg", "abc.jpg")
	require.NoError(t, err)

	assert.Equal(t, 2000, result.Width)
	assert.Equal(t, 1500, result.Height)
	assert.Equal(t, "originals/abc.jpg", result.Original)

	// Every breakpoint variant exists and is capped at its target width.
	for _, width := range []int{320, 768, 1280} {
		relative, ok := result.Sizes[strconv.Itoa(width)]
		require.True(t, ok)

		cfg := decodeConfig(t, filepath.Join(root, relative))
		assert.Equal(t, width, cfg.Width)
	}

	// The original keeps source dimensions.
	cfg := decodeConfig(t, filepath.Join(root, result.Original))
	assert.Equal(t, 2000, cfg.Width)
	assert.Equal(t, 1500, cfg.Height)
}

/*
TestPipeline_NoUpscale verifies a small source is never enlarged.
*/
func TestPipeline_NoUpscale(t *testing.T) {
	root := t.TempDir()
	pipeline := media.NewPipeline(root)

	raw := testImageJPEG(t, 500, 400)
	result, err := pipeline.Process(context.Background(), raw, "image/jpeg", "small.jpg")
	require.NoError(t, err)

	// 320 shrinks, 768 and 1280 stay at native width.
	assert.Equal(t, 320, decodeConfig(t, filepath.Join(root, result.Sizes["320"])).Width)
	assert.Equal(t, 500, decodeConfig(t, filepath.Join(root, result.Sizes["768"])).Width)
	assert.Equal(t, 500, decodeConfig(t, filepath.Join(root, result.Sizes["1280"])).Width)
}

/*
TestPipeline_OrientationNormalized verifies a source carrying EXIF
Orientation=6 (90-degree rotation) is stored upright: the reported and
persisted dimensions are the swapped source dimensions.
*/
func TestPipeline_OrientationNormalized(t *testing.T) {
	root := t.TempDir()
	pipeline := media.NewPipeline(root)

	raw := jpegWithOrientation(t, testImageJPEG(t, 400, 200), 6)
	result, err := pipeline.Process(context.Background(), raw, "image/jpeg", "rotated.jpg")
	require.NoError(t, err)

	assert.Equal(t, 200, result.Width)
	assert.Equal(t, 400, result.Height)

	cfg := decodeConfig(t, filepath.Join(root, result.Original))
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 400, cfg.Height)

	// Variants are capped against the normalized width, not the raw one.
	assert.Equal(t, 200, decodeConfig(t, filepath.Join(root, result.Sizes["320"])).Width)
}

/*
TestPipeline_PNG verifies PNG sources round-trip through the PNG encoder.
*/
func TestPipeline_PNG(t *testing.T) {
	root := t.TempDir()
	pipeline := media.NewPipeline(root)

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	result, err := pipeline.Process(context.Background(), buf.Bytes(), "image/png", "pic.png")
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(root, result.Original))
	require.NoError(t, err)
	defer file.Close()

	_, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

/*
TestPipeline_RejectsUnsupportedType verifies the allow-list fires before
any file I/O.
*/
func TestPipeline_RejectsUnsupportedType(t *testing.T) {
	root := t.TempDir()
	pipeline := media.NewPipeline(root)

	_, err := pipeline.Process(context.Background(), []byte("GIF89a"), "image/gif", "x.gif")
	require.Error(t, err)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", apperr.As(err).Code)

	// Nothing was written.
	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

/*
TestPipeline_RejectsUndecodableBytes verifies lying about the mimetype
fails at decode, not at serve time.
*/
func TestPipeline_RejectsUndecodableBytes(t *testing.T) {
	pipeline := media.NewPipeline(t.TempDir())

	_, err := pipeline.Process(context.Background(), []byte("not an image"), "image/jpeg", "x.jpg")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
