// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/auth"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository keyed by id and email.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperr.Conflict("Resource already exists")
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	return user, nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return apperr.NotFound("Resource")
	}
	user.PasswordHash = passwordHash
	return nil
}

// fakeSessionRepository is an in-memory SessionRepository.
type fakeSessionRepository struct {
	byToken map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{byToken: make(map[string]*auth.Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	f.byToken[session.Token] = session
	return nil
}

func (f *fakeSessionRepository) FindByToken(_ context.Context, token string) (*auth.Session, error) {
	session, ok := f.byToken[token]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	return session, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, id string) error {
	for token, session := range f.byToken {
		if session.ID == id {
			delete(f.byToken, token)
		}
	}
	return nil
}

func (f *fakeSessionRepository) DeleteByToken(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

// seedUser creates an account directly in the fake with a real bcrypt hash.
func seedUser(t *testing.T, users *fakeUserRepository, email, password string, role access.Role) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{ID: "user-" + email, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

/*
TestLogin verifies a valid credential pair yields a persisted session.
*/
func TestLogin(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions)

	seedUser(t, users, "admin@example.com", "hunter2hunter2", access.RoleAdmin)

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, "admin@example.com", result.User.Email)

	// The session row exists and resolves to the right principal.
	principal, err := service.ResolveSession(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, principal.UserID)
	assert.Equal(t, access.RoleAdmin, principal.Role)
}

/*
TestLogin_GenericFailure verifies unknown accounts and wrong passwords are
indistinguishable to the caller.
*/
func TestLogin_GenericFailure(t *testing.T) {
	users := newFakeUserRepository()
	service := auth.NewService(users, newFakeSessionRepository())

	seedUser(t, users, "admin@example.com", "hunter2hunter2", access.RoleAdmin)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown_account", auth.LoginInput{Email: "ghost@example.com", Password: "hunter2hunter2"}},
		{"wrong_password", auth.LoginInput{Email: "admin@example.com", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "UNAUTHENTICATED", appError.Code)
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}
}

/*
TestResolveSession_Unknown verifies never-issued tokens are rejected.
*/
func TestResolveSession_Unknown(t *testing.T) {
	service := auth.NewService(newFakeUserRepository(), newFakeSessionRepository())

	_, err := service.ResolveSession(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", apperr.As(err).Code)
}

/*
TestResolveSession_ExpiredPrunes verifies an expired session is rejected
and its row is deleted on read.
*/
func TestResolveSession_ExpiredPrunes(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions)

	user := seedUser(t, users, "viewer@example.com", "hunter2hunter2", access.RoleViewer)
	require.NoError(t, sessions.Create(context.Background(), &auth.Session{
		ID:        "s1",
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err := service.ResolveSession(context.Background(), "expired-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", apperr.As(err).Code)

	// The dead row is gone; presenting the token again fails the same way.
	assert.Empty(t, sessions.byToken)
	_, err = service.ResolveSession(context.Background(), "expired-token")
	assert.Error(t, err)
}

/*
TestLogout_Idempotent verifies revocation succeeds for live, absent, and
empty tokens alike.
*/
func TestLogout_Idempotent(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions)

	user := seedUser(t, users, "admin@example.com", "hunter2hunter2", access.RoleAdmin)
	token, _, err := service.IssueSession(context.Background(), user.ID)
	require.NoError(t, err)

	assert.NoError(t, service.Logout(context.Background(), token))
	assert.NoError(t, service.Logout(context.Background(), token)) // double logout
	assert.NoError(t, service.Logout(context.Background(), ""))

	_, err = service.ResolveSession(context.Background(), token)
	assert.Error(t, err)
}

/*
TestCreateAccount verifies provisioning hashes the password and surfaces
duplicate emails as Conflict.
*/
func TestCreateAccount(t *testing.T) {
	users := newFakeUserRepository()
	service := auth.NewService(users, newFakeSessionRepository())

	user, err := service.CreateAccount(context.Background(), "new@example.com", "longpassword", access.RoleViewer)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "longpassword", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("longpassword", user.PasswordHash))

	_, err = service.CreateAccount(context.Background(), "new@example.com", "otherpassword", access.RoleViewer)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
