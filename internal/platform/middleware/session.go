// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/ctxutil"
	"github.com/buihoang/memoria/internal/platform/respond"
)

// SessionResolver defines the interface needed to resolve session cookies.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit testing.
type SessionResolver interface {
	// ResolveSession maps an opaque session token to a session principal.
	// Expired sessions are pruned as a side effect and reported as
	// apperr.Unauthenticated, indistinguishable from unknown tokens.
	ResolveSession(context context.Context, token string) (access.SessionPrincipal, error)
}

// ResolvePrincipal reads the session cookie and attaches the resolved
// [access.SessionPrincipal] to the request context.
//
// # Flow
//  1. No cookie: request proceeds as anonymous.
//  2. Cookie present but invalid or expired: the stale client credential is
//     cleared and the request proceeds as anonymous. Guards downstream
//     ([RequireSession], [RequireAdmin]) turn anonymity into 401.
//  3. Valid cookie: principal injected into context.
//
// Share routes never pass through here — routes are statically partitioned
// between cookie-credential and path-token-credential surfaces.
func ResolvePrincipal(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			principal, err := resolver.ResolveSession(request.Context(), cookie.Value)
			if err != nil {
				// Instruct the client to drop the dead credential so it stops
				// presenting it on every request.
				ClearSessionCookie(writer)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks requests that carry no session principal.
//
// # Usage
//
// Must be registered in the router AFTER [ResolvePrincipal].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := ctxutil.GetSessionPrincipal(request.Context()); !ok {
			respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests whose session principal lacks the admin role.
//
// # Usage
//
// Must be registered AFTER [ResolvePrincipal]. It implies [RequireSession]:
// anonymous requests get 401, authenticated non-admins get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if err := access.CanMutate(principal); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Cookie Helpers

// SetSessionCookie writes the session token as a site-wide, HTTP-only,
// SameSite=Lax cookie with the fixed session lifetime.
func SetSessionCookie(writer http.ResponseWriter, token string, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to delete its session cookie.
func ClearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
