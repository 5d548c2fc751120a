// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package auth implements account login and opaque-token session management.

Architecture:

  - Service: Orchestrates credential checks and session lifecycle.
  - Repository: Abstracted interfaces for Postgres (accounts, sessions).
  - Security: Bcrypt password hashes; random opaque session tokens.

Sessions are server-side rows keyed by a random token. The token carries no
claims and has no signature: presenting a token that matches an unexpired
row IS the authentication. Deleting the row revokes the session instantly,
with no distributed-invalidation problem to solve.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/sec"
	"github.com/buihoang/memoria/pkg/uuid"
)

// Service implements authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks or
// session resolution must be reviewed carefully.
type Service struct {
	users    UserRepository
	sessions SessionRepository
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(users UserRepository, sessions SessionRepository) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult represents a successfully established session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Login validates credentials and establishes a new session.

Description: Looks up the account by email, performs a constant-time bcrypt
comparison, and persists a fresh session row keyed by a random opaque token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Session token, expiry, and the authenticated user
  - error: Unauthenticated (generic, to prevent account enumeration) or
    storage failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Missing account and wrong password share one generic message.
	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid login credentials")
	}

	token, expiresAt, err := service.IssueSession(context, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

/*
Logout deletes the session row for the presented token.

Description: Revocation is idempotent — a token that is already gone (double
logout, expired-and-pruned) still results in a successful logout.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := service.sessions.DeleteByToken(context, token); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

/*
Me returns the account behind an authenticated session principal.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: The account entity
  - error: NotFound or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// # Session Resolution

/*
ResolveSession maps an opaque session token to a session principal.

Description: This is the single entry point turning a cookie value into an
identity. Expired rows are pruned on read as a side effect, so the session
table self-cleans without a background reaper. A pruned-but-still-presented
token and a never-issued token are deliberately indistinguishable to the
caller.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - access.SessionPrincipal: The authenticated identity
  - error: Unauthenticated for unknown or expired tokens
*/
func (service *Service) ResolveSession(context context.Context, token string) (access.SessionPrincipal, error) {
	session, err := service.sessions.FindByToken(context, token)
	if err != nil {
		return access.SessionPrincipal{}, apperr.Unauthenticated("Invalid or expired session")
	}

	if session.Expired(time.Now()) {
		// Prune on read. Concurrent resolutions of the same dead token both
		// issue the delete; the second one is a harmless no-op.
		_ = service.sessions.Delete(context, session.ID)
		return access.SessionPrincipal{}, apperr.Unauthenticated("Invalid or expired session")
	}

	user, err := service.users.FindByID(context, session.UserID)
	if err != nil {
		return access.SessionPrincipal{}, apperr.Unauthenticated("Invalid or expired session")
	}

	return access.SessionPrincipal{UserID: user.ID, Role: user.Role}, nil
}

// # Account Provisioning

/*
CreateAccount persists a new account with a hashed password.

Description: Used by invite redemption (viewer accounts) and the admin seed
command. Emails are unique; duplicates surface as Conflict.

Parameters:
  - context: context.Context
  - email: string
  - password: string
  - role: access.Role

Returns:
  - *User: Created entity
  - error: Conflict or storage failures
*/
func (service *Service) CreateAccount(context context.Context, email, password string, role access.Role) (*User, error) {
	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

/*
IssueSession creates a fresh session row for a user.

Description: Generates the opaque token and persists it with the fixed
session lifetime. There is no sliding expiry.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: The opaque session token for the cookie
  - time.Time: Session expiry instant
  - error: Token generation or storage failures
*/
func (service *Service) IssueSession(context context.Context, userID string) (string, time.Time, error) {
	token, err := sec.GenerateToken(constants.SessionTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.SessionTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Create(context, session); err != nil {
		return "", time.Time{}, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return token, expiresAt, nil
}
