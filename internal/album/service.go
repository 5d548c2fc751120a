// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package album implements curated, explicitly ordered photo collections.

Membership positions are assigned transactionally under an album row lock,
so two concurrent attaches to the same album always get distinct positions.
The repository doubles as the live membership oracle for album share links.
*/
package album

import (
	"context"
	"fmt"

	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/sec"
	"github.com/buihoang/memoria/pkg/pagination"
	"github.com/buihoang/memoria/pkg/slug"
	"github.com/buihoang/memoria/pkg/uuid"
)

// Service implements album use cases.
type Service struct {
	repo Repository
}

// NewService constructs the album [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the data for a new album.
type CreateInput struct {
	Title       string
	Description string
}

/*
Create persists a new empty album.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Album: Created entity
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Album, error) {
	suffix, err := sec.GenerateToken(constants.SlugSuffixBytes)
	if err != nil {
		return nil, fmt.Errorf("album_service_slug_suffix_failed: %w", err)
	}

	album := &Album{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title) + "-" + suffix,
		Description: input.Description,
	}

	if err := service.repo.Create(context, album); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, album.ID)
}

// List returns a page of albums with pagination metadata.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Album, pagination.Meta, error) {
	albums, total, err := service.repo.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return albums, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns a single album.
func (service *Service) Get(context context.Context, id string) (*Album, error) {
	return service.repo.FindByID(context, id)
}

/*
AddPhoto appends a photo to the end of an album.

Description: Position assignment happens in the repository transaction;
duplicate membership surfaces as Conflict via the unique constraint.

Parameters:
  - context: context.Context
  - albumID: string
  - photoID: string

Returns:
  - error: NotFound (no such album), Conflict (already a member), or
    storage failures
*/
func (service *Service) AddPhoto(context context.Context, albumID, photoID string) error {
	return service.repo.AddPhoto(context, albumID, photoID)
}
