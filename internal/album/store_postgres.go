// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package album

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buihoang/memoria/internal/platform/database/schema"
	"github.com/buihoang/memoria/internal/platform/dberr"
	"github.com/buihoang/memoria/pkg/pagination"
)

// PostgresRepository implements [Repository] backed by core.album.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// albumSelect builds the album projection with count and cover subqueries.
func albumSelect() string {
	return fmt.Sprintf(`SELECT a.%s, a.%s, a.%s, a.%s, a.%s,
		(SELECT COUNT(*) FROM %s ap WHERE ap.%s = a.%s),
		COALESCE((SELECT ap.%s FROM %s ap WHERE ap.%s = a.%s ORDER BY ap.%s ASC LIMIT 1), '')
		FROM %s a`,
		schema.Album.ID, schema.Album.Title, schema.Album.Slug, schema.Album.Description, schema.Album.CreatedAt,
		schema.AlbumPhoto.Table, schema.AlbumPhoto.AlbumID, schema.Album.ID,
		schema.AlbumPhoto.PhotoID, schema.AlbumPhoto.Table, schema.AlbumPhoto.AlbumID, schema.Album.ID, schema.AlbumPhoto.Position,
		schema.Album.Table)
}

func (repository *PostgresRepository) Create(context context.Context, album *Album) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.Album.Table,
		schema.Album.ID, schema.Album.Title, schema.Album.Slug, schema.Album.Description)

	_, err := repository.db.Exec(context, query, album.ID, album.Title, album.Slug, album.Description)
	return dberr.Wrap(err, "create_album")
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Album, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Album.Table)
	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_albums")
	}

	query := fmt.Sprintf(`%s ORDER BY a.%s DESC LIMIT $1 OFFSET $2`,
		albumSelect(), schema.Album.CreatedAt)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_albums")
	}
	defer rows.Close()

	albums := make([]*Album, 0)
	for rows.Next() {
		a := &Album{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.Description, &a.CreatedAt,
			&a.PhotoCount, &a.CoverPhotoID); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_album")
		}
		albums = append(albums, a)
	}

	return albums, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Album, error) {
	query := fmt.Sprintf(`%s WHERE a.%s = $1`, albumSelect(), schema.Album.ID)

	a := &Album{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Description, &a.CreatedAt,
		&a.PhotoCount, &a.CoverPhotoID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_album_by_id")
	}
	return a, nil
}

func (repository *PostgresRepository) AddPhoto(context context.Context, albumID, photoID string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_add_photo")
	}
	defer func() { _ = tx.Rollback(context) }()

	// Serialize position assignment per album.
	lockAlbum := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.Album.ID, schema.Album.Table, schema.Album.ID)

	var lockedID string
	if err := tx.QueryRow(context, lockAlbum, albumID).Scan(&lockedID); err != nil {
		return dberr.Wrap(err, "lock_album")
	}

	countMembers := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.AlbumPhoto.Table, schema.AlbumPhoto.AlbumID)

	var memberCount int
	if err := tx.QueryRow(context, countMembers, albumID).Scan(&memberCount); err != nil {
		return dberr.Wrap(err, "count_album_members")
	}

	attach := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.AlbumPhoto.Table,
		schema.AlbumPhoto.AlbumID, schema.AlbumPhoto.PhotoID, schema.AlbumPhoto.Position)

	if _, err := tx.Exec(context, attach, albumID, photoID, memberCount+1); err != nil {
		return dberr.Wrap(err, "attach_photo_to_album")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_add_photo")
	}
	return nil
}

func (repository *PostgresRepository) IsAlbumMember(context context.Context, albumID, photoID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.AlbumPhoto.Table, schema.AlbumPhoto.AlbumID, schema.AlbumPhoto.PhotoID)

	var isMember bool
	if err := repository.db.QueryRow(context, query, albumID, photoID).Scan(&isMember); err != nil {
		return false, dberr.Wrap(err, "check_album_membership")
	}
	return isMember, nil
}
