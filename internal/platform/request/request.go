// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/ctxutil"
	"github.com/buihoang/memoria/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter (UUID/token/size label) from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Session extracts the authenticated session principal from the request context.

Returns the zero value and false if the request carries no session principal.
*/
func Session(request *http.Request) (access.SessionPrincipal, bool) {
	return ctxutil.GetSessionPrincipal(request.Context())
}

/*
RequiredSession ensures the request is session-authenticated.

Returns:
  - access.SessionPrincipal: The authenticated session principal
  - error: apperr.Unauthenticated if the request carries no session
*/
func RequiredSession(request *http.Request) (access.SessionPrincipal, error) {
	session, ok := ctxutil.GetSessionPrincipal(request.Context())
	if !ok {
		return access.SessionPrincipal{}, apperr.Unauthenticated("Authentication required")
	}
	return session, nil
}
