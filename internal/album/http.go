// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/middleware"
	requestutil "github.com/buihoang/memoria/internal/platform/request"
	"github.com/buihoang/memoria/internal/platform/respond"
	"github.com/buihoang/memoria/internal/platform/validate"
	"github.com/buihoang/memoria/pkg/pagination"
)

const maxTitleLength = 200

// Handler exposes album endpoints.
//
// The detail endpoint composes with the photo service so an album response
// carries its members in position order, media links included.
type Handler struct {
	service *Service
	photos  *photo.Service
}

// NewHandler constructs the album [Handler].
func NewHandler(service *Service, photos *photo.Service) *Handler {
	return &Handler{
		service: service,
		photos:  photos,
	}
}

// RegisterRoutes mounts the album endpoints on the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAdmin).Post("/", handler.create)
	router.With(middleware.RequireSession).Get("/", handler.list)
	router.With(middleware.RequireSession).Get("/{id}", handler.get)
	router.With(middleware.RequireAdmin).Post("/{id}/photos", handler.addPhoto)
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("title", payload.Title).
		MaxLen("title", payload.Title, maxTitleLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.Create(request.Context(), CreateInput{
		Title:       payload.Title,
		Description: payload.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, album)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	albums, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, albums, meta)
}

// albumDetail is the composed album + members payload.
type albumDetail struct {
	*Album
	Photos []*photo.Photo `json:"photos"`
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	album, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Members come back in explicit position order.
	photos, _, err := handler.photos.List(request.Context(),
		photo.ListFilter{AlbumID: id}, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, albumDetail{Album: album, Photos: photos})
}

type addPhotoRequest struct {
	PhotoID string `json:"photo_id"`
}

func (handler *Handler) addPhoto(writer http.ResponseWriter, request *http.Request) {
	var payload addPhotoRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("photo_id", payload.PhotoID).
		UUID("photo_id", payload.PhotoID).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddPhoto(request.Context(), requestutil.Param(request, "id"), payload.PhotoID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
