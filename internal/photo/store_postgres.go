// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package photo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buihoang/memoria/internal/platform/database/schema"
	"github.com/buihoang/memoria/internal/platform/dberr"
	"github.com/buihoang/memoria/internal/tag"
	"github.com/buihoang/memoria/pkg/pagination"
	"github.com/buihoang/memoria/pkg/slug"
	"github.com/buihoang/memoria/pkg/uuid"
)

// PostgresRepository implements [Repository] backed by core.photo.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, photo *Photo, tagNames []string, albumID string) error {
	sizesJSON, err := json.Marshal(photo.Sizes)
	if err != nil {
		return fmt.Errorf("photo_store_marshal_sizes_failed: %w", err)
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_photo")
	}
	defer func() { _ = tx.Rollback(context) }()

	// 1. Insert the photo row
	insertPhoto := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.Photo.Table,
		schema.Photo.ID, schema.Photo.Title, schema.Photo.Slug, schema.Photo.Description,
		schema.Photo.StorageKey, schema.Photo.MimeType, schema.Photo.Width, schema.Photo.Height,
		schema.Photo.Visibility, schema.Photo.SizesJSON)

	if _, err := tx.Exec(context, insertPhoto,
		photo.ID, photo.Title, photo.Slug, photo.Description,
		photo.StorageKey, photo.MimeType, photo.Width, photo.Height,
		photo.Visibility, sizesJSON); err != nil {
		return dberr.Wrap(err, "create_photo")
	}

	// 2. Connect-or-create each tag by slug, then link it
	upsertTag := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = excluded.%s RETURNING %s`,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.Name, schema.Tag.Slug,
		schema.Tag.Slug, schema.Tag.Name, schema.Tag.Name, schema.Tag.ID)

	linkTag := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.PhotoTag.Table, schema.PhotoTag.PhotoID, schema.PhotoTag.TagID)

	for _, name := range tagNames {
		tagSlug := slug.From(name)
		if tagSlug == "" {
			continue
		}

		var tagID string
		if err := tx.QueryRow(context, upsertTag, uuid.New(), name, tagSlug).Scan(&tagID); err != nil {
			return dberr.Wrap(err, "upsert_tag")
		}
		if _, err := tx.Exec(context, linkTag, photo.ID, tagID); err != nil {
			return dberr.Wrap(err, "link_photo_tag")
		}
	}

	// 3. Optional album membership at the next free position
	if albumID != "" {
		// Lock the album row so concurrent uploads serialize on the
		// position counter instead of racing to the same value.
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

		if _, err := tx.Exec(context, attach, albumID, photo.ID, memberCount+1); err != nil {
			return dberr.Wrap(err, "attach_photo_to_album")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_photo")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Photo, int, error) {
	from := fmt.Sprintf(`FROM %s p`, schema.Photo.Table)
	orderBy := fmt.Sprintf(`p.%s DESC`, schema.Photo.CreatedAt)

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.AlbumID != "" {
		// Membership join doubles as the ordering source: album listings
		// come back in curated position order, not recency.
		from += fmt.Sprintf(` JOIN %s ap ON ap.%s = p.%s`,
			schema.AlbumPhoto.Table, schema.AlbumPhoto.PhotoID, schema.Photo.ID)
		args = append(args, filter.AlbumID)
		conditions = append(conditions, fmt.Sprintf(`ap.%s = $%d`, schema.AlbumPhoto.AlbumID, len(args)))
		orderBy = fmt.Sprintf(`ap.%s ASC`, schema.AlbumPhoto.Position)
	}

	if filter.Query != "" {
		args = append(args, filter.Query)
		conditions = append(conditions, fmt.Sprintf(`p.%s ILIKE '%%' || $%d || '%%'`, schema.Photo.Title, len(args)))
	}

	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s pt JOIN %s t ON t.%s = pt.%s WHERE pt.%s = p.%s AND t.%s = $%d)`,
			schema.PhotoTag.Table, schema.Tag.Table,
			schema.Tag.ID, schema.PhotoTag.TagID,
			schema.PhotoTag.PhotoID, schema.Photo.ID,
			schema.Tag.Slug, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total count under the same filter, for pagination metadata
	countQuery := `SELECT COUNT(*) ` + from + where
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_photos")
	}

	listQuery := fmt.Sprintf(`SELECT %s %s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		photoColumns("p"), from, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_photos")
	}
	defer rows.Close()

	photos := make([]*Photo, 0)
	ids := make([]string, 0)
	for rows.Next() {
		p, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		photos = append(photos, p)
		ids = append(ids, p.ID)
	}
	rows.Close()

	if err := repository.loadTags(context, photos, ids); err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Photo, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p WHERE p.%s = $1`,
		photoColumns("p"), schema.Photo.Table, schema.Photo.ID)

	photo, err := scanPhoto(func(dest ...interface{}) error {
		return repository.db.QueryRow(context, query, id).Scan(dest...)
	})
	if err != nil {
		return nil, err
	}

	if err := repository.loadTags(context, []*Photo{photo}, []string{photo.ID}); err != nil {
		return nil, err
	}
	return photo, nil
}

func (repository *PostgresRepository) StorageKey(context context.Context, photoID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Photo.StorageKey, schema.Photo.Table, schema.Photo.ID)

	var storageKey string
	if err := repository.db.QueryRow(context, query, photoID).Scan(&storageKey); err != nil {
		return "", dberr.Wrap(err, "photo_storage_key")
	}
	return storageKey, nil
}

// loadTags attaches tags to the given photos with one batched query.
func (repository *PostgresRepository) loadTags(context context.Context, photos []*Photo, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT pt.%s, t.%s, t.%s, t.%s
		FROM %s pt JOIN %s t ON t.%s = pt.%s
		WHERE pt.%s = ANY($1) ORDER BY t.%s ASC`,
		schema.PhotoTag.PhotoID, schema.Tag.ID, schema.Tag.Name, schema.Tag.Slug,
		schema.PhotoTag.Table, schema.Tag.Table,
		schema.Tag.ID, schema.PhotoTag.TagID,
		schema.PhotoTag.PhotoID, schema.Tag.Name)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "load_photo_tags")
	}
	defer rows.Close()

	byID := make(map[string]*Photo, len(photos))
	for _, p := range photos {
		byID[p.ID] = p
	}

	for rows.Next() {
		var photoID string
		t := tag.Tag{}
		if err := rows.Scan(&photoID, &t.ID, &t.Name, &t.Slug); err != nil {
			return dberr.Wrap(err, "scan_photo_tag")
		}
		if p, ok := byID[photoID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return nil
}

// photoColumns returns the aliased photo column list for SELECTs.
func photoColumns(alias string) string {
	cols := schema.Photo.Columns()
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = alias + "." + col
	}
	return strings.Join(parts, ", ")
}

// scanPhoto scans one photo row, decoding the sizes JSON column.
func scanPhoto(scan func(dest ...interface{}) error) (*Photo, error) {
	p := &Photo{Tags: make([]tag.Tag, 0)}
	var sizesJSON []byte

	err := scan(&p.ID, &p.Title, &p.Slug, &p.Description,
		&p.StorageKey, &p.MimeType, &p.Width, &p.Height, &p.Visibility, &sizesJSON, &p.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_photo")
	}

	if len(sizesJSON) > 0 {
		if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
			return nil, fmt.Errorf("photo_store_unmarshal_sizes_failed: %w", err)
		}
	}
	return p, nil
}
