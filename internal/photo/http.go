// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package photo

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/ctxutil"
	"github.com/buihoang/memoria/internal/platform/middleware"
	requestutil "github.com/buihoang/memoria/internal/platform/request"
	"github.com/buihoang/memoria/internal/platform/respond"
	"github.com/buihoang/memoria/internal/platform/validate"
	"github.com/buihoang/memoria/pkg/pagination"
)

// maxTitleLength bounds photo titles.
const maxTitleLength = 200

// multipartMemoryLimit is the in-memory threshold for multipart parsing;
// larger parts spill to temp files.
const multipartMemoryLimit = 32 << 20

// Handler exposes photo and media endpoints.
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler constructs the photo [Handler].
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the photo CRUD endpoints on the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAdmin).Post("/", handler.upload)
	router.With(middleware.RequireSession).Get("/", handler.list)
	router.With(middleware.RequireSession).Get("/{id}", handler.get)
}

// RegisterMediaRoutes mounts the session-surface media delivery endpoint.
func (handler *Handler) RegisterMediaRoutes(router chi.Router) {
	router.With(middleware.RequireSession).Get("/{size}/{photoID}", handler.media)
}

// # Upload

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	// Bound the whole body before any parsing happens.
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes)

	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(writer, request, apperr.ValidationError("Upload exceeds the size limit"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart payload"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	// Exactly one file part, under the "file" key. Multiple files in one
	// request would make the all-or-nothing pipeline contract ambiguous.
	totalFiles := 0
	for _, headers := range request.MultipartForm.File {
		totalFiles += len(headers)
	}
	fileHeaders := request.MultipartForm.File["file"]
	if totalFiles != 1 || len(fileHeaders) != 1 {
		respond.Error(writer, request, apperr.ValidationError(`Exactly one "file" part is required`))
		return
	}

	title := request.FormValue("title")
	description := request.FormValue("description")
	albumID := request.FormValue("album_id")
	visibility, visibilityOK := ParseVisibility(request.FormValue("visibility"))

	validator := &validate.Validator{}
	validator.
		Required("title", title).
		MaxLen("title", title, maxTitleLength).
		Custom("visibility", !visibilityOK, "Must be one of: PRIVATE, SHARED")
	if albumID != "" {
		validator.UUID("album_id", albumID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := fileHeaders[0].Open()
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Unreadable file part"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Unreadable file part"))
		return
	}

	created, err := handler.service.Upload(request.Context(), UploadInput{
		Title:       title,
		Description: description,
		TagNames:    splitTags(request.FormValue("tags")),
		AlbumID:     albumID,
		Visibility:  visibility,
		Data:        data,
		MimeType:    fileHeaders[0].Header.Get("Content-Type"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// # Reads

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		Query:   request.URL.Query().Get("q"),
		TagSlug: request.URL.Query().Get("tag"),
		AlbumID: request.URL.Query().Get("album_id"),
	}

	photos, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, photos, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	photo, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, photo)
}

// # Media Delivery

func (handler *Handler) media(writer http.ResponseWriter, request *http.Request) {
	principal := ctxutil.GetPrincipal(request.Context())

	location, err := handler.service.Locate(request.Context(), principal,
		requestutil.Param(request, "size"), requestutil.Param(request, "photoID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.service.Deliver(writer, location)
}

// splitTags parses the comma-separated tags form field.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
