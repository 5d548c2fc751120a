// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package share

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/platform/middleware"
	requestutil "github.com/buihoang/memoria/internal/platform/request"
	"github.com/buihoang/memoria/internal/platform/respond"
	"github.com/buihoang/memoria/internal/platform/validate"
	"github.com/buihoang/memoria/pkg/pagination"
)

// Handler exposes share-link endpoints.
type Handler struct {
	service    *Service
	shareLimit func(http.Handler) http.Handler
}

// NewHandler constructs the share [Handler].
//
// shareLimit caps anonymous token probing; it wraps only the public routes.
func NewHandler(service *Service, shareLimit func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:    service,
		shareLimit: shareLimit,
	}
}

// RegisterAdminRoutes mounts the authenticated issuance endpoint.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.With(middleware.RequireAdmin).Post("/", handler.create)
}

// RegisterPublicRoutes mounts the anonymous share surface.
//
// These routes never see the session middleware chain: the path token is
// the only credential.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.With(handler.shareLimit).Get("/{token}", handler.resolve)
	router.With(handler.shareLimit).Get("/{token}/media/{size}/{photoID}", handler.media)
}

type createRequest struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	ExpiresHours int    `json:"expires_hours"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("resource_type", payload.ResourceType).
		OneOf("resource_type", payload.ResourceType, string(access.ResourcePhoto), string(access.ResourceAlbum)).
		Required("resource_id", payload.ResourceID).
		UUID("resource_id", payload.ResourceID).
		Custom("expires_hours", payload.ExpiresHours < 0, "Must not be negative").
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Create(request.Context(), CreateInput{
		ResourceType: access.ResourceKind(payload.ResourceType),
		ResourceID:   payload.ResourceID,
		ExpiresIn:    time.Duration(payload.ExpiresHours) * time.Hour,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, link)
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	payload, err := handler.service.Resolve(request.Context(),
		requestutil.Param(request, "token"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payload)
}

func (handler *Handler) media(writer http.ResponseWriter, request *http.Request) {
	location, err := handler.service.Locate(request.Context(),
		requestutil.Param(request, "token"),
		requestutil.Param(request, "size"),
		requestutil.Param(request, "photoID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.service.Deliver(writer, location)
}
