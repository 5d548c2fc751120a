// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buihoang/memoria/internal/platform/database/schema"
	"github.com/buihoang/memoria/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] backed by users.account.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs the repository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash, schema.UserAccount.Role)

	_, err := repository.db.Exec(context, query, user.ID, user.Email, user.PasswordHash, string(user.Role))
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash,
		schema.UserAccount.Role, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table, schema.UserAccount.ID)

	user := &User{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash,
		schema.UserAccount.Role, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table, schema.UserAccount.Email)

	user := &User{}
	err := repository.db.QueryRow(context, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.PasswordHash, schema.UserAccount.ID)

	_, err := repository.db.Exec(context, query, id, passwordHash)
	return dberr.Wrap(err, "update_user_password")
}

// PostgresSessionRepository implements [SessionRepository] backed by users.session.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSessionRepository constructs the repository.
func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.Token, schema.UserSession.ExpiresAt)

	_, err := repository.db.Exec(context, query, session.ID, session.UserID, session.Token, session.ExpiresAt)
	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresSessionRepository) FindByToken(context context.Context, token string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.Token,
		schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt,
		schema.UserSession.Table, schema.UserSession.Token)

	session := &Session{}
	err := repository.db.QueryRow(context, query, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.ID)

	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_session")
}

func (repository *PostgresSessionRepository) DeleteByToken(context context.Context, token string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.Token)

	_, err := repository.db.Exec(context, query, token)
	return dberr.Wrap(err, "delete_session_by_token")
}
