// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package invite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buihoang/memoria/internal/platform/database/schema"
	"github.com/buihoang/memoria/internal/platform/dberr"
)

// PostgresRepository implements [Repository] backed by users.invite.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, invite *Invite) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.UserInvite.Table,
		schema.UserInvite.ID, schema.UserInvite.Email, schema.UserInvite.Token,
		schema.UserInvite.Role, schema.UserInvite.ExpiresAt)

	_, err := repository.db.Exec(context, query,
		invite.ID, invite.Email, invite.Token, string(invite.Role), invite.ExpiresAt)
	return dberr.Wrap(err, "create_invite")
}

func (repository *PostgresRepository) FindByToken(context context.Context, token string) (*Invite, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserInvite.ID, schema.UserInvite.Email, schema.UserInvite.Token,
		schema.UserInvite.Role, schema.UserInvite.ExpiresAt, schema.UserInvite.RedeemedAt,
		schema.UserInvite.CreatedAt,
		schema.UserInvite.Table, schema.UserInvite.Token)

	invite := &Invite{}
	err := repository.db.QueryRow(context, query, token).Scan(
		&invite.ID, &invite.Email, &invite.Token, &invite.Role,
		&invite.ExpiresAt, &invite.RedeemedAt, &invite.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_invite_by_token")
	}
	return invite, nil
}

func (repository *PostgresRepository) Redeem(context context.Context, id string) error {
	// The IS NULL guard makes redemption a compare-and-set: concurrent
	// accepts race on the same row and exactly one UPDATE matches.
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 AND %s IS NULL`,
		schema.UserInvite.Table, schema.UserInvite.RedeemedAt,
		schema.UserInvite.ID, schema.UserInvite.RedeemedAt)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "redeem_invite")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
