// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package access

import (
	"context"
	"fmt"

	"github.com/buihoang/memoria/internal/platform/apperr"
)

// # Contracts

// MembershipChecker answers whether a photo currently belongs to an album.
//
// # Why an interface?
//
// The authorizer must consult live membership on every decision (no caching:
// removing a photo from a shared album must revoke access immediately).
// The album storage layer provides the implementation; tests inject fakes.
type MembershipChecker interface {
	IsAlbumMember(context context.Context, albumID, photoID string) (bool, error)
}

// # Authorizer

// Authorizer decides whether a principal may read a requested resource.
//
// # Concurrency
//
// Authorizer is stateless and safe for concurrent use.
type Authorizer struct {
	membership MembershipChecker
}

// NewAuthorizer constructs an [Authorizer] with its membership dependency.
func NewAuthorizer(membership MembershipChecker) *Authorizer {
	return &Authorizer{membership: membership}
}

/*
CanRead decides ALLOW/DENY for a read of (kind, resourceID) by principal.

Rules, evaluated in this order:

 1. Session principals may read any photo or album regardless of ownership.
 2. A photo share grants exactly its own photo: same kind AND same id.
 3. An album share grants the album itself, plus any photo that is a
    current member of that album — and nothing else. An album share must
    transparently expose its members for rendering, but must never become
    a backdoor to arbitrary photos; a photo share must never expose
    sibling album contents.

Every other combination, including unknown principal kinds, is DENY.

Returns:
  - nil: ALLOW
  - *apperr.AppError (FORBIDDEN): DENY
  - wrapped storage error: membership lookup failed (treated as DENY upstream)
*/
func (authorizer *Authorizer) CanRead(context context.Context, principal Principal, kind ResourceKind, resourceID string) error {
	switch p := principal.(type) {

	case SessionPrincipal:
		// Authenticated users have unrestricted read access to the gallery.
		return nil

	case SharePrincipal:
		switch p.ResourceType {

		case ResourcePhoto:
			// A photo link can only access the exact shared photo id.
			if kind == ResourcePhoto && resourceID == p.ResourceID {
				return nil
			}
			return apperr.Forbidden("Forbidden")

		case ResourceAlbum:
			// The shared album itself is readable.
			if kind == ResourceAlbum && resourceID == p.ResourceID {
				return nil
			}

			// Album links can access only photos that belong to the shared album.
			if kind == ResourcePhoto {
				isMember, err := authorizer.membership.IsAlbumMember(context, p.ResourceID, resourceID)
				if err != nil {
					return fmt.Errorf("access_membership_check_failed: %w", err)
				}
				if isMember {
					return nil
				}
			}
			return apperr.Forbidden("Forbidden")
		}

		// Unknown resource type on a stored link: fail closed.
		return apperr.Forbidden("Forbidden")
	}

	// Unknown principal kind: fail closed.
	return apperr.Forbidden("Forbidden")
}

// # Mutation Gate

// CanMutate decides whether a principal may perform a mutating operation
// (upload, album creation, invite or share-link issuance).
//
// Only admin sessions mutate. A non-admin session is FORBIDDEN (it is
// authenticated, just not privileged); share principals never mutate.
func CanMutate(principal Principal) error {
	session, ok := principal.(SessionPrincipal)
	if !ok {
		return apperr.Unauthenticated("Authentication required")
	}
	if !session.IsAdmin() {
		return apperr.Forbidden("Admin role required")
	}
	return nil
}
