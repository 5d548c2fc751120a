// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package invite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/platform/middleware"
	requestutil "github.com/buihoang/memoria/internal/platform/request"
	"github.com/buihoang/memoria/internal/platform/respond"
	"github.com/buihoang/memoria/internal/platform/validate"
)

// minPasswordLength is enforced only at enrollment; existing hashes are
// never re-validated.
const minPasswordLength = 8

// Handler exposes invite endpoints.
type Handler struct {
	service      *Service
	cookieSecure bool
	createLimit  func(http.Handler) http.Handler
}

// NewHandler constructs the invite [Handler].
func NewHandler(service *Service, cookieSecure bool, createLimit func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:      service,
		cookieSecure: cookieSecure,
		createLimit:  createLimit,
	}
}

// RegisterRoutes mounts the invite endpoints on the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAdmin, handler.createLimit).Post("/", handler.create)
	router.Post("/accept", handler.accept)
}

type createRequest struct {
	Email string `json:"email"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("email", payload.Email).
		Email("email", payload.Email).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	invite, err := handler.service.Create(request.Context(), payload.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, invite)
}

type acceptRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (handler *Handler) accept(writer http.ResponseWriter, request *http.Request) {
	var payload acceptRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("token", payload.Token).
		Required("password", payload.Password).
		MinLen("password", payload.Password, minPasswordLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Accept(request.Context(), AcceptInput{
		Token:    payload.Token,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The new viewer lands signed in.
	middleware.SetSessionCookie(writer, result.SessionToken, handler.cookieSecure)
	respond.Created(writer, result.User)
}
