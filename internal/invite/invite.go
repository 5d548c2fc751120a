// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package invite

import (
	"time"

	"github.com/buihoang/memoria/internal/access"
)

// Invite is a one-time, emailed enrollment token for a viewer account.
type Invite struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Token      string      `json:"-"`
	Role       access.Role `json:"role"`
	ExpiresAt  time.Time   `json:"expires_at"`
	RedeemedAt *time.Time  `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Usable reports whether the invite can still be redeemed at the given instant.
func (i *Invite) Usable(now time.Time) bool {
	return i.RedeemedAt == nil && now.Before(i.ExpiresAt)
}
