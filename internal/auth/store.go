// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package auth

import "context"

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new user account.
	Create(context context.Context, user *User) error

	// FindByID returns the user with the given id, or a NotFound error.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the user with the given email, or a NotFound error.
	FindByEmail(context context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	// Create persists a new session row.
	Create(context context.Context, session *Session) error

	// FindByToken returns the session carrying the given opaque token,
	// or a NotFound error. Expiry is NOT checked here; callers decide.
	FindByToken(context context.Context, token string) (*Session, error)

	// Delete removes a session by id. Deleting an absent row is a no-op,
	// which makes expiry pruning safe under concurrent resolution.
	Delete(context context.Context, id string) error

	// DeleteByToken removes the session carrying the given token.
	// Absent rows are a no-op (idempotent logout).
	DeleteByToken(context context.Context, token string) error
}
