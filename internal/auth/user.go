// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package auth

import (
	"time"

	"github.com/buihoang/memoria/internal/access"
)

// User is a registered account. Accounts are created only by seeding
// (the initial admin) or by redeeming an invite (viewers).
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Session is a server-side login record. The opaque token stored here is
// the sole proof of authentication; there is no signed claim format.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session lifetime has elapsed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
