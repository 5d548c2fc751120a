// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package share

import (
	"time"

	"github.com/buihoang/memoria/internal/access"
)

// ShareLink grants anonymous, read-only access to exactly one resource
// (a photo or an album) until it expires.
//
// The token is the whole credential. Expired links are never revived and
// are indistinguishable from links that never existed.
type ShareLink struct {
	ID           string              `json:"id"`
	Token        string              `json:"token"`
	ResourceType access.ResourceKind `json:"resource_type"`
	ResourceID   string              `json:"resource_id"`
	ExpiresAt    time.Time           `json:"expires_at"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Live reports whether the link is still valid at the given instant.
func (l *ShareLink) Live(now time.Time) bool {
	return now.Before(l.ExpiresAt)
}

// Principal returns the scoped anonymous principal this link grants.
func (l *ShareLink) Principal() access.SharePrincipal {
	return access.SharePrincipal{
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
	}
}
