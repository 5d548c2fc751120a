// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package photo_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/pkg/pagination"
)

// fakeRepository is an in-memory photo.Repository recording create calls.
type fakeRepository struct {
	photos    map[string]*photo.Photo
	lastTags  []string
	lastAlbum string
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{photos: make(map[string]*photo.Photo)}
}

func (f *fakeRepository) Create(_ context.Context, p *photo.Photo, tagNames []string, albumID string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.photos[p.ID] = p
	f.lastTags = tagNames
	f.lastAlbum = albumID
	return nil
}

func (f *fakeRepository) List(_ context.Context, _ photo.ListFilter, _ pagination.Params) ([]*photo.Photo, int, error) {
	var all []*photo.Photo
	for _, p := range f.photos {
		copied := *p
		all = append(all, &copied)
	}
	return all, len(all), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*photo.Photo, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) StorageKey(_ context.Context, photoID string) (string, error) {
	p, ok := f.photos[photoID]
	if !ok {
		return "", apperr.NotFound("Resource")
	}
	return p.StorageKey, nil
}

// noMembership denies every album membership check.
type noMembership struct{}

func (noMembership) IsAlbumMember(context.Context, string, string) (bool, error) {
	return false, nil
}

func newService(t *testing.T) (*photo.Service, *fakeRepository, string) {
	t.Helper()
	root := t.TempDir()
	repo := newFakeRepository()
	service := photo.NewService(repo,
		media.NewPipeline(root),
		media.NewLocator(repo),
		access.NewAuthorizer(noMembership{}),
		"/api/v1/media")
	return service, repo, root
}

// sourceJPEG renders an encoded JPEG of the given width in memory.
func sourceJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

/*
TestUpload verifies the full ingest path: derivatives on disk, a record
with geometry and sizes, and media links on the response.
*/
func TestUpload(t *testing.T) {
	service, repo, root := newService(t)

	created, err := service.Upload(context.Background(), photo.UploadInput{
		Title:    "Sunset",
		TagNames: []string{"sunset", "beach"},
		AlbumID:  "album-1",
		Data:     sourceJPEG(t, 2000, 1200),
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 2000, created.Width)
	assert.Equal(t, 1200, created.Height)
	assert.Equal(t, photo.VisibilityPrivate, created.Visibility)
	assert.Regexp(t, "^sunset-[0-9a-f]{6}$", created.Slug)

	// The repository saw the tags and the album attach.
	assert.Equal(t, []string{"sunset", "beach"}, repo.lastTags)
	assert.Equal(t, "album-1", repo.lastAlbum)

	// Every stored size is physically on disk and has a delivery link.
	stored := repo.photos[created.ID]
	require.Len(t, stored.Sizes, 4)
	for label, relative := range stored.Sizes {
		_, err := os.Stat(filepath.Join(root, relative))
		assert.NoError(t, err, label)
		assert.Equal(t, "/api/v1/media/"+label+"/"+created.ID, created.Media[label])
	}
}

/*
TestUpload_PipelineFailureCreatesNoRecord verifies a failed derivative run
never leaves a photo row behind.
*/
func TestUpload_PipelineFailureCreatesNoRecord(t *testing.T) {
	service, repo, _ := newService(t)

	_, err := service.Upload(context.Background(), photo.UploadInput{
		Title:    "Broken",
		Data:     []byte("not an image"),
		MimeType: "image/jpeg",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.photos)

	_, err = service.Upload(context.Background(), photo.UploadInput{
		Title:    "Gif",
		Data:     []byte("GIF89a"),
		MimeType: "image/gif",
	})
	require.Error(t, err)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", apperr.As(err).Code)
	assert.Empty(t, repo.photos)
}

/*
TestUpload_RecordFailureDiscardsVariants verifies a failed record create
removes the files the pipeline already wrote.
*/
func TestUpload_RecordFailureDiscardsVariants(t *testing.T) {
	service, repo, root := newService(t)
	repo.createErr = apperr.Conflict("Resource already exists")

	_, err := service.Upload(context.Background(), photo.UploadInput{
		Title:    "Duplicate",
		Data:     sourceJPEG(t, 800, 600),
		MimeType: "image/jpeg",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Every bucket directory exists but holds nothing.
	for _, dir := range []string{"originals", "size_320", "size_768", "size_1280"} {
		entries, readErr := os.ReadDir(filepath.Join(root, dir))
		require.NoError(t, readErr)
		assert.Empty(t, entries, dir)
	}
}

/*
TestLocate verifies label validation, authorization, and path resolution
run in that order.
*/
func TestLocate(t *testing.T) {
	service, _, _ := newService(t)

	created, err := service.Upload(context.Background(), photo.UploadInput{
		Title:    "Sunset",
		Data:     sourceJPEG(t, 800, 600),
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)

	session := access.SessionPrincipal{UserID: "u1", Role: access.RoleViewer}

	location, err := service.Locate(context.Background(), session, "320", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "size_320/"+created.ID+".jpg", location.RelativePath)

	// Bad label fails before any lookup or authorization.
	_, err = service.Locate(context.Background(), session, "640", created.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Out-of-scope share principal is denied.
	other := access.SharePrincipal{ResourceType: access.ResourcePhoto, ResourceID: "someone-else"}
	_, err = service.Locate(context.Background(), other, "320", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Missing photo is a NotFound for a trusted session principal.
	_, err = service.Locate(context.Background(), session, "320", "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
