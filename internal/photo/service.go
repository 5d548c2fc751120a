// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package photo implements upload, listing, and authorized media delivery.

Architecture:

  - Service: Orchestrates the upload pipeline and the read paths.
  - Repository: Transactional Postgres persistence (photo + tags + album).
  - Media: Derivatives are generated BEFORE the record is created, so a
    photo row never exists without its full variant set on disk.

Every media read, session or share, funnels through [Service.Locate]: parse
the size label, ask the authorizer, resolve the path. There is no second
delivery path to audit.
*/
package photo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/sec"
	"github.com/buihoang/memoria/pkg/pagination"
	"github.com/buihoang/memoria/pkg/slug"
	"github.com/buihoang/memoria/pkg/uuid"
)

// Service implements photo use cases.
type Service struct {
	repo        Repository
	pipeline    *media.Pipeline
	locator     *media.Locator
	authorizer  *access.Authorizer
	mediaPrefix string
}

// NewService constructs the photo [Service].
//
// mediaPrefix is the public URL prefix for session-surface media delivery
// (e.g. "/api/v1/media"); it is prepended to every size link in responses.
func NewService(repo Repository, pipeline *media.Pipeline, locator *media.Locator, authorizer *access.Authorizer, mediaPrefix string) *Service {
	return &Service{
		repo:        repo,
		pipeline:    pipeline,
		locator:     locator,
		authorizer:  authorizer,
		mediaPrefix: mediaPrefix,
	}
}

// # Upload Flow

// UploadInput holds a validated multipart upload.
type UploadInput struct {
	Title       string
	Description string
	TagNames    []string
	AlbumID     string
	Visibility  Visibility
	Data        []byte
	MimeType    string
}

/*
Upload ingests a new image end to end.

Description: Derives the storage key from a fresh id and the format
extension, runs the full derivative pipeline, then creates the photo record
(with tags and optional album membership) in one transaction. The pipeline
runs first: if any variant fails, no record is created and nothing becomes
visible.

Parameters:
  - context: context.Context
  - input: UploadInput

Returns:
  - *Photo: Created entity with tags and media links
  - error: UnsupportedMedia, ValidationError (undecodable), or storage failures
*/
func (service *Service) Upload(context context.Context, input UploadInput) (*Photo, error) {
	format, err := media.FormatFromMime(input.MimeType)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	storageKey := id + "." + format.Ext()

	result, err := service.pipeline.Process(context, input.Data, input.MimeType, storageKey)
	if err != nil {
		return nil, err
	}

	// Random suffix keeps similar titles from colliding on the unique slug.
	suffix, err := sec.GenerateToken(constants.SlugSuffixBytes)
	if err != nil {
		return nil, fmt.Errorf("photo_service_slug_suffix_failed: %w", err)
	}

	sizes := make(map[string]string, len(result.Sizes)+1)
	for label, path := range result.Sizes {
		sizes[label] = path
	}
	sizes[string(media.SizeOriginal)] = result.Original

	visibility := input.Visibility
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	photo := &Photo{
		ID:          id,
		Title:       input.Title,
		Slug:        slug.From(input.Title) + "-" + suffix,
		Description: input.Description,
		StorageKey:  storageKey,
		MimeType:    input.MimeType,
		Width:       result.Width,
		Height:      result.Height,
		Visibility:  visibility,
		Sizes:       sizes,
	}

	if err := service.repo.Create(context, photo, input.TagNames, input.AlbumID); err != nil {
		// No record references the variants; drop them so a failed create
		// does not leak files on disk.
		service.pipeline.Discard(result)
		return nil, err
	}

	created, err := service.repo.FindByID(context, photo.ID)
	if err != nil {
		return nil, err
	}
	service.attachMediaLinks(created)
	return created, nil
}

// # Read Paths

// List returns a filtered page of photos with pagination metadata.
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Photo, pagination.Meta, error) {
	photos, total, err := service.repo.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	for _, p := range photos {
		service.attachMediaLinks(p)
	}
	return photos, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns a single photo with tags and media links.
func (service *Service) Get(context context.Context, id string) (*Photo, error) {
	photo, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	service.attachMediaLinks(photo)
	return photo, nil
}

// # Media Delivery

/*
Locate authorizes and resolves one media variant for delivery.

Description: The single decision point for every media read. The size label
is validated before any lookup, the principal is checked against the photo,
and only then is the storage path resolved.

Parameters:
  - context: context.Context
  - principal: access.Principal (session or share)
  - sizeLabel: Raw label from the URL
  - photoID: string

Returns:
  - *media.Location: Path and delivery headers for the internal redirect
  - error: ValidationError (bad label), Forbidden (out-of-scope principal),
    or NotFound (no such photo)
*/
func (service *Service) Locate(context context.Context, principal access.Principal, sizeLabel, photoID string) (*media.Location, error) {
	size, err := media.ParseSize(sizeLabel)
	if err != nil {
		return nil, err
	}

	if err := service.authorizer.CanRead(context, principal, access.ResourcePhoto, photoID); err != nil {
		return nil, err
	}

	return service.locator.Resolve(context, size, photoID)
}

// Deliver writes the internal-redirect response for a resolved location.
func (service *Service) Deliver(writer http.ResponseWriter, location *media.Location) {
	service.locator.Redirect(writer, location)
}

// attachMediaLinks populates the public delivery URLs for every stored size.
func (service *Service) attachMediaLinks(photo *Photo) {
	photo.Media = MediaLinks(photo, service.mediaPrefix)
}

// MediaLinks builds size-label delivery URLs under the given prefix.
//
// Share-surface handlers pass their token-scoped prefix so shared photos
// link to share media routes instead of the session surface.
func MediaLinks(photo *Photo, prefix string) map[string]string {
	links := make(map[string]string, len(photo.Sizes))
	for label := range photo.Sizes {
		links[label] = prefix + "/" + label + "/" + photo.ID
	}
	return links
}
