// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package share implements token-scoped anonymous access to photos and albums.

Architecture:

  - Service: Issues links and resolves tokens into scoped principals.
  - Repository: Postgres persistence; expiry is interpreted here, not there.
  - Masking: Unknown and expired tokens both resolve to NotFound. A probing
    client learns nothing about whether a token ever existed.

Share reads reuse the exact same authorizer and locator as session reads;
the only difference is the principal fed into the decision.
*/
package share

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/album"
	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/sec"
	"github.com/buihoang/memoria/pkg/pagination"
	"github.com/buihoang/memoria/pkg/uuid"
)

// Service implements share-link use cases.
type Service struct {
	links     Repository
	photos    *photo.Service
	albums    *album.Service
	expiresIn time.Duration
}

// NewService constructs the share [Service].
func NewService(links Repository, photos *photo.Service, albums *album.Service, expiresIn time.Duration) *Service {
	return &Service{
		links:     links,
		photos:    photos,
		albums:    albums,
		expiresIn: expiresIn,
	}
}

// # Issuance

// CreateInput holds the data for a new share link.
type CreateInput struct {
	ResourceType access.ResourceKind
	ResourceID   string

	// ExpiresIn overrides the configured default lifetime when positive.
	ExpiresIn time.Duration
}

/*
Create issues a share link for an existing photo or album.

Description: Verifies the target resource exists before minting the token,
so a link can never be created dangling.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *ShareLink: Created link including its token
  - error: NotFound (no such resource), ValidationError, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*ShareLink, error) {
	switch input.ResourceType {
	case access.ResourcePhoto:
		if _, err := service.photos.Get(context, input.ResourceID); err != nil {
			return nil, err
		}
	case access.ResourceAlbum:
		if _, err := service.albums.Get(context, input.ResourceID); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.ValidationError("Invalid resource type")
	}

	token, err := sec.GenerateToken(constants.ShareTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("share_service_token_generation_failed: %w", err)
	}

	expiresIn := service.expiresIn
	if input.ExpiresIn > 0 {
		expiresIn = input.ExpiresIn
	}

	link := &ShareLink{
		ID:           uuid.New(),
		Token:        token,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		ExpiresAt:    time.Now().Add(expiresIn),
	}

	if err := service.links.Create(context, link); err != nil {
		return nil, err
	}
	return link, nil
}

// # Resolution

// Payload is the anonymous view behind a resolved share token.
//
// Exactly one of Photo or Album is set, matching Type. Media links inside
// are scoped to the share surface, never to the session surface.
type Payload struct {
	Type      access.ResourceKind `json:"type"`
	ExpiresAt time.Time           `json:"expires_at"`
	Photo     *photo.Photo        `json:"photo,omitempty"`
	Album     *album.Album        `json:"album,omitempty"`
	Photos    []*photo.Photo      `json:"photos,omitempty"`
	Meta      *pagination.Meta    `json:"meta,omitempty"`
}

// resolveLive returns the link for a token iff it is still valid.
//
// Expired and unknown are deliberately the same error.
func (service *Service) resolveLive(context context.Context, token string) (*ShareLink, error) {
	link, err := service.links.FindByToken(context, token)
	if err != nil {
		return nil, apperr.NotFound("Share link")
	}
	if !link.Live(time.Now()) {
		return nil, apperr.NotFound("Share link")
	}
	return link, nil
}

/*
Resolve renders the shared resource for an anonymous viewer.

Description: For a photo link, the payload is the photo itself. For an album
link, it is the album plus its members in position order. Either way, media
links are rewritten onto the token's own delivery route.

Parameters:
  - context: context.Context
  - token: Raw token from the URL
  - params: Pagination for album members (ignored for photo links)

Returns:
  - *Payload: The scoped view
  - error: NotFound for unknown or expired tokens
*/
func (service *Service) Resolve(context context.Context, token string, params pagination.Params) (*Payload, error) {
	link, err := service.resolveLive(context, token)
	if err != nil {
		return nil, err
	}

	mediaPrefix := shareMediaPrefix(token)
	payload := &Payload{
		Type:      link.ResourceType,
		ExpiresAt: link.ExpiresAt,
	}

	switch link.ResourceType {
	case access.ResourcePhoto:
		p, err := service.photos.Get(context, link.ResourceID)
		if err != nil {
			return nil, apperr.NotFound("Share link")
		}
		p.Media = photo.MediaLinks(p, mediaPrefix)
		payload.Photo = p

	case access.ResourceAlbum:
		a, err := service.albums.Get(context, link.ResourceID)
		if err != nil {
			return nil, apperr.NotFound("Share link")
		}

		members, meta, err := service.photos.List(context,
			photo.ListFilter{AlbumID: link.ResourceID}, params)
		if err != nil {
			return nil, err
		}
		for _, p := range members {
			p.Media = photo.MediaLinks(p, mediaPrefix)
		}

		payload.Album = a
		payload.Photos = members
		payload.Meta = &meta

	default:
		// Unknown kind on a stored link: treat as missing.
		return nil, apperr.NotFound("Share link")
	}

	return payload, nil
}

/*
Locate authorizes and resolves a media variant through a share token.

Description: Resolves the token into its scoped principal and delegates to
the photo service's single delivery decision point. A photo link only
reaches its own photo; an album link only reaches current members.

Parameters:
  - context: context.Context
  - token: Raw token from the URL
  - sizeLabel: Raw size label from the URL
  - photoID: string

Returns:
  - *media.Location: Path and headers for the internal redirect
  - error: NotFound (dead token), Forbidden (out-of-scope photo),
    ValidationError (bad label)
*/
func (service *Service) Locate(context context.Context, token, sizeLabel, photoID string) (*media.Location, error) {
	link, err := service.resolveLive(context, token)
	if err != nil {
		return nil, err
	}
	return service.photos.Locate(context, link.Principal(), sizeLabel, photoID)
}

// Deliver writes the internal-redirect response for a resolved location.
func (service *Service) Deliver(writer http.ResponseWriter, location *media.Location) {
	service.photos.Deliver(writer, location)
}

// shareMediaPrefix is the token-scoped media route prefix.
func shareMediaPrefix(token string) string {
	return "/api/v1/share/" + token + "/media"
}
