// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package invite

import "context"

// Repository defines persistence operations for invites.
type Repository interface {
	// Create persists a new invite.
	Create(context context.Context, invite *Invite) error

	// FindByToken returns the invite carrying the given token, or a
	// NotFound error. Expiry and redemption are NOT checked here.
	FindByToken(context context.Context, token string) (*Invite, error)

	// Redeem atomically marks an unredeemed invite as redeemed. It fails
	// with a NotFound error if the invite was already redeemed, so two
	// concurrent accepts can never both succeed.
	Redeem(context context.Context, id string) error
}
