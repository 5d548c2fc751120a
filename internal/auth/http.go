// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/middleware"
	requestutil "github.com/buihoang/memoria/internal/platform/request"
	"github.com/buihoang/memoria/internal/platform/respond"
	"github.com/buihoang/memoria/internal/platform/validate"
)

// Handler exposes authentication endpoints.
type Handler struct {
	service      *Service
	cookieSecure bool
	loginLimit   func(http.Handler) http.Handler
}

// NewHandler constructs the auth [Handler].
//
// loginLimit is the per-route credential-attempt limiter; it wraps only the
// login endpoint.
func NewHandler(service *Service, cookieSecure bool, loginLimit func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:      service,
		cookieSecure: cookieSecure,
		loginLimit:   loginLimit,
	}
}

// RegisterRoutes mounts the auth endpoints on the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(handler.loginLimit).Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireSession).Get("/me", handler.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("email", payload.Email).
		Email("email", payload.Email).
		Required("password", payload.Password).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.SetSessionCookie(writer, result.Token, handler.cookieSecure)
	respond.OK(writer, result.User)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	// Best-effort token extraction: logout without a cookie is still a 204.
	token := ""
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := handler.service.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.ClearSessionCookie(writer)
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), session.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
