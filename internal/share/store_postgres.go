// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package share

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buihoang/memoria/internal/platform/database/schema"
	"github.com/buihoang/memoria/internal/platform/dberr"
)

// PostgresRepository implements [Repository] backed by core.sharelink.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, link *ShareLink) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.ShareLink.Table,
		schema.ShareLink.ID, schema.ShareLink.Token, schema.ShareLink.ResourceType,
		schema.ShareLink.ResourceID, schema.ShareLink.ExpiresAt)

	_, err := repository.db.Exec(context, query,
		link.ID, link.Token, string(link.ResourceType), link.ResourceID, link.ExpiresAt)
	return dberr.Wrap(err, "create_share_link")
}

func (repository *PostgresRepository) FindByToken(context context.Context, token string) (*ShareLink, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ShareLink.ID, schema.ShareLink.Token, schema.ShareLink.ResourceType,
		schema.ShareLink.ResourceID, schema.ShareLink.ExpiresAt, schema.ShareLink.CreatedAt,
		schema.ShareLink.Table, schema.ShareLink.Token)

	link := &ShareLink{}
	err := repository.db.QueryRow(context, query, token).Scan(
		&link.ID, &link.Token, &link.ResourceType, &link.ResourceID,
		&link.ExpiresAt, &link.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_share_link_by_token")
	}
	return link, nil
}
