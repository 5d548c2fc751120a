// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package share_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/album"
	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/share"
	"github.com/buihoang/memoria/pkg/pagination"
)

// fakeGallery is an in-memory backend implementing both the photo and the
// album repositories, sharing one membership table like Postgres does.
type fakeGallery struct {
	photos    map[string]*photo.Photo
	albums    map[string]*album.Album
	positions map[string]map[string]int // albumID -> photoID -> position
}

func newFakeGallery() *fakeGallery {
	return &fakeGallery{
		photos:    make(map[string]*photo.Photo),
		albums:    make(map[string]*album.Album),
		positions: make(map[string]map[string]int),
	}
}

// photo.Repository

func (f *fakeGallery) Create(_ context.Context, p *photo.Photo, _ []string, _ string) error {
	f.photos[p.ID] = p
	return nil
}

func (f *fakeGallery) List(_ context.Context, filter photo.ListFilter, _ pagination.Params) ([]*photo.Photo, int, error) {
	if filter.AlbumID == "" {
		var all []*photo.Photo
		for _, p := range f.photos {
			all = append(all, p)
		}
		return all, len(all), nil
	}

	members := f.positions[filter.AlbumID]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return members[ids[i]] < members[ids[j]] })

	result := make([]*photo.Photo, 0, len(ids))
	for _, id := range ids {
		copied := *f.photos[id]
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (f *fakeGallery) FindByID(_ context.Context, id string) (*photo.Photo, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeGallery) StorageKey(_ context.Context, photoID string) (string, error) {
	p, ok := f.photos[photoID]
	if !ok {
		return "", apperr.NotFound("Resource")
	}
	return p.StorageKey, nil
}

// album.Repository (FindByID shadowed above works for photos only, so the
// album side gets its own wrapper type)

type fakeAlbums struct{ gallery *fakeGallery }

func (f *fakeAlbums) Create(_ context.Context, a *album.Album) error {
	f.gallery.albums[a.ID] = a
	return nil
}

func (f *fakeAlbums) List(_ context.Context, _ pagination.Params) ([]*album.Album, int, error) {
	var all []*album.Album
	for _, a := range f.gallery.albums {
		all = append(all, a)
	}
	return all, len(all), nil
}

func (f *fakeAlbums) FindByID(_ context.Context, id string) (*album.Album, error) {
	a, ok := f.gallery.albums[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	return a, nil
}

func (f *fakeAlbums) AddPhoto(_ context.Context, albumID, photoID string) error {
	if _, ok := f.gallery.albums[albumID]; !ok {
		return apperr.NotFound("Resource")
	}
	members, ok := f.gallery.positions[albumID]
	if !ok {
		members = make(map[string]int)
		f.gallery.positions[albumID] = members
	}
	if _, exists := members[photoID]; exists {
		return apperr.Conflict("Resource already exists")
	}
	members[photoID] = len(members) + 1
	return nil
}

func (f *fakeAlbums) IsAlbumMember(_ context.Context, albumID, photoID string) (bool, error) {
	_, ok := f.gallery.positions[albumID][photoID]
	return ok, nil
}

// fakeLinkRepository is an in-memory share.Repository.
type fakeLinkRepository struct {
	byToken map[string]*share.ShareLink
}

func (f *fakeLinkRepository) Create(_ context.Context, link *share.ShareLink) error {
	f.byToken[link.Token] = link
	return nil
}

func (f *fakeLinkRepository) FindByToken(_ context.Context, token string) (*share.ShareLink, error) {
	link, ok := f.byToken[token]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	return link, nil
}

// fixture wires real photo/album/share services over the fakes.
type fixture struct {
	gallery *fakeGallery
	links   *fakeLinkRepository
	photos  *photo.Service
	albums  *album.Service
	service *share.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gallery := newFakeGallery()
	albums := &fakeAlbums{gallery: gallery}
	links := &fakeLinkRepository{byToken: make(map[string]*share.ShareLink)}

	pipeline := media.NewPipeline(t.TempDir())
	locator := media.NewLocator(gallery)
	authorizer := access.NewAuthorizer(albums)

	photoService := photo.NewService(gallery, pipeline, locator, authorizer, "/api/v1/media")
	albumService := album.NewService(albums)
	shareService := share.NewService(links, photoService, albumService, 72*time.Hour)

	return &fixture{
		gallery: gallery,
		links:   links,
		photos:  photoService,
		albums:  albumService,
		service: shareService,
	}
}

// seedPhoto inserts a photo row directly, bypassing the pipeline.
func (f *fixture) seedPhoto(id string) *photo.Photo {
	p := &photo.Photo{
		ID:         id,
		Title:      "Photo " + id,
		Slug:       "photo-" + id,
		StorageKey: id + ".jpg",
		MimeType:   "image/jpeg",
		Width:      2000,
		Height:     1500,
		Sizes: map[string]string{
			"original": "originals/" + id + ".jpg",
			"320":      "size_320/" + id + ".jpg",
		},
	}
	f.gallery.photos[id] = p
	return p
}

// seedAlbum inserts an album with the given member photos, in order.
func (f *fixture) seedAlbum(t *testing.T, id string, photoIDs ...string) *album.Album {
	t.Helper()
	a := &album.Album{ID: id, Title: "Album " + id, Slug: "album-" + id}
	f.gallery.albums[id] = a
	albums := &fakeAlbums{gallery: f.gallery}
	for _, photoID := range photoIDs {
		require.NoError(t, albums.AddPhoto(context.Background(), id, photoID))
	}
	return a
}

/*
TestCreate_VerifiesTarget verifies links can only be minted for resources
that exist.
*/
func TestCreate_VerifiesTarget(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")
	f.seedAlbum(t, "a1", "p1")

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, link.Token)
	assert.Equal(t, access.ResourcePhoto, link.ResourceType)
	assert.True(t, link.ExpiresAt.After(time.Now()))

	_, err = f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourcePhoto,
		ResourceID:   "missing",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourceKind("video"),
		ResourceID:   "p1",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestCreate_ExpiryOverride verifies a positive ExpiresIn replaces the default.
*/
func TestCreate_ExpiryOverride(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
		ExpiresIn:    time.Hour,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), link.ExpiresAt, time.Minute)
}

/*
TestResolve_Photo verifies a photo link renders its photo with media links
rewritten onto the share surface.
*/
func TestResolve_Photo(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
	})
	require.NoError(t, err)

	payload, err := f.service.Resolve(context.Background(), link.Token, pagination.Params{Page: 1, Limit: 24})
	require.NoError(t, err)

	assert.Equal(t, access.ResourcePhoto, payload.Type)
	require.NotNil(t, payload.Photo)
	assert.Nil(t, payload.Album)

	prefix := "/api/v1/share/" + link.Token + "/media"
	assert.Equal(t, prefix+"/320/p1", payload.Photo.Media["320"])
	assert.Equal(t, prefix+"/original/p1", payload.Photo.Media["original"])
}

/*
TestResolve_Album verifies an album link renders members in position order.
*/
func TestResolve_Album(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")
	f.seedPhoto("p2")
	f.seedAlbum(t, "a1", "p2", "p1") // p2 first by position

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourceAlbum,
		ResourceID:   "a1",
	})
	require.NoError(t, err)

	payload, err := f.service.Resolve(context.Background(), link.Token, pagination.Params{Page: 1, Limit: 24})
	require.NoError(t, err)

	assert.Equal(t, access.ResourceAlbum, payload.Type)
	require.NotNil(t, payload.Album)
	require.Len(t, payload.Photos, 2)
	assert.Equal(t, "p2", payload.Photos[0].ID)
	assert.Equal(t, "p1", payload.Photos[1].ID)

	prefix := "/api/v1/share/" + link.Token + "/media"
	assert.Equal(t, prefix+"/320/p2", payload.Photos[0].Media["320"])
	require.NotNil(t, payload.Meta)
	assert.Equal(t, 2, payload.Meta.Total)
}

/*
TestResolve_DeadTokens verifies unknown and expired tokens are the same
NotFound to the caller.
*/
func TestResolve_DeadTokens(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")

	require.NoError(t, f.links.Create(context.Background(), &share.ShareLink{
		ID:           "l1",
		Token:        "expired-token",
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	for _, token := range []string{"never-issued", "expired-token"} {
		t.Run(token, func(t *testing.T) {
			_, err := f.service.Resolve(context.Background(), token, pagination.Params{Page: 1, Limit: 24})
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "NOT_FOUND", appError.Code)
			assert.Equal(t, "Share link not found", appError.Message)
		})
	}
}

/*
TestLocate_PhotoScope verifies a photo link delivers only its own photo.
*/
func TestLocate_PhotoScope(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")
	f.seedPhoto("p2")

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
	})
	require.NoError(t, err)

	location, err := f.service.Locate(context.Background(), link.Token, "320", "p1")
	require.NoError(t, err)
	assert.Equal(t, "size_320/p1.jpg", location.RelativePath)

	_, err = f.service.Locate(context.Background(), link.Token, "320", "p2")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestLocate_AlbumScope verifies an album link reaches current members only,
tracking membership live.
*/
func TestLocate_AlbumScope(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")
	f.seedPhoto("p2")
	f.seedAlbum(t, "a1", "p1")

	link, err := f.service.Create(context.Background(), share.CreateInput{
		ResourceType: access.ResourceAlbum,
		ResourceID:   "a1",
	})
	require.NoError(t, err)

	_, err = f.service.Locate(context.Background(), link.Token, "original", "p1")
	require.NoError(t, err)

	_, err = f.service.Locate(context.Background(), link.Token, "original", "p2")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Membership is consulted live: removing the photo revokes access.
	delete(f.gallery.positions["a1"], "p1")
	_, err = f.service.Locate(context.Background(), link.Token, "original", "p1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestLocate_ExpiredToken verifies delivery dies with the link.
*/
func TestLocate_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto("p1")

	require.NoError(t, f.links.Create(context.Background(), &share.ShareLink{
		ID:           "l1",
		Token:        "expired-token",
		ResourceType: access.ResourcePhoto,
		ResourceID:   "p1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	_, err := f.service.Locate(context.Background(), "expired-token", "320", "p1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
