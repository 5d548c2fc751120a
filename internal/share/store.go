// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package share

import "context"

// Repository defines persistence operations for share links.
type Repository interface {
	// Create persists a new share link.
	Create(context context.Context, link *ShareLink) error

	// FindByToken returns the link carrying the given token, or a
	// NotFound error. Expiry is NOT checked here; the service masks
	// expired links as missing.
	FindByToken(context context.Context, token string) (*ShareLink, error)
}
