// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package access implements the authorization core of Memoria.

Every media or resource read flows through exactly one decision function,
[Authorizer.CanRead], fed by exactly one of two principal kinds:

  - [SessionPrincipal]: a cookie-authenticated user with a role.
  - [SharePrincipal]: an anonymous viewer scoped to a single shared resource.

The principal set is a closed sum type so the security-critical branch list
stays reviewable in one place. A request carries exactly one principal,
never both.
*/
package access

// # Resource Taxonomy

// ResourceKind identifies which of the two shareable resource kinds a
// request targets. The system intentionally supports no other kinds.
type ResourceKind string

const (
	// ResourcePhoto is a single photo and its size variants.
	ResourcePhoto ResourceKind = "photo"

	// ResourceAlbum is an ordered collection of photos.
	ResourceAlbum ResourceKind = "album"
)

// # Roles

// Role is the authorization level of an authenticated account.
type Role string

const (
	// RoleAdmin may upload, create albums, issue invites and share links.
	RoleAdmin Role = "ADMIN"

	// RoleViewer may read everything but mutate nothing.
	RoleViewer Role = "VIEWER"
)

// # Principals

// Principal is the resolved identity of a request.
//
// The unexported marker method seals the type: only [SessionPrincipal] and
// [SharePrincipal] can satisfy it, which keeps the authorizer's type switch
// exhaustive by construction.
type Principal interface {
	principal()
}

// SessionPrincipal is an authenticated user resolved from a session cookie.
type SessionPrincipal struct {
	UserID string
	Role   Role
}

func (SessionPrincipal) principal() {}

// IsAdmin reports whether the principal holds the admin role.
func (p SessionPrincipal) IsAdmin() bool { return p.Role == RoleAdmin }

// SharePrincipal is an anonymous viewer resolved from a share-link token.
// It is scoped to exactly one resource for the lifetime of the link.
type SharePrincipal struct {
	ResourceType ResourceKind
	ResourceID   string
}

func (SharePrincipal) principal() {}
