// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultItemRepository is the SQL implementation of [VaultItemRepository]
// over the "vault_items" table.
type vaultItemRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

func NewVaultItemRepository(db *DB, logger *logger.Logger) VaultItemRepository {
	logger.Debug().Msg("creating vault item repository")
	return &vaultItemRepository{
		db:     db,
		logger: logger,
		now:    utcNow,
	}
}

func (r *vaultItemRepository) ListItems(ctx context.Context, userID int64) ([]models.CipheredItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectItems(userID)
	if err != nil {
		return nil, buildError(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing vault items")
		return nil, r.db.wrapError(err, nil, ErrExecutingQuery)
	}
	defer rows.Close()

	items := make([]models.CipheredItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *vaultItemRepository) CreateItem(ctx context.Context, item models.CipheredItem) (models.CipheredItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.insertItem(item, r.now())
	if err != nil {
		return models.CipheredItem{}, buildError(err)
	}

	created, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("item_id", item.ID).Msg("error creating vault item")
		return models.CipheredItem{}, r.db.wrapError(err, nil, ErrExecutingQuery)
	}

	return created, nil
}

// UpdateItem returns [ErrItemNotFound] when no item matches both ID and
// UserID, so one user can never overwrite another user's item.
func (r *vaultItemRepository) UpdateItem(ctx context.Context, item models.CipheredItem) (models.CipheredItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.updateItem(item, r.now())
	if err != nil {
		return models.CipheredItem{}, buildError(err)
	}

	updated, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return models.CipheredItem{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).Str("item_id", item.ID).Msg("error updating vault item")
		return models.CipheredItem{}, r.db.wrapError(err, nil, ErrExecutingQuery)
	}

	return updated, nil
}

func (r *vaultItemRepository) DeleteItem(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.deleteItem(id, userID)
	if err != nil {
		return buildError(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("item_id", id).Msg("error deleting vault item")
		return r.db.wrapError(err, nil, ErrExecutingStatement)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrItemNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

var (
	_ rowScanner = (*sql.Row)(nil)
	_ rowScanner = (*sql.Rows)(nil)
)

func scanItem(row rowScanner) (models.CipheredItem, error) {
	var item models.CipheredItem
	err := row.Scan(&item.ID, &item.UserID, &item.Site, &item.Username, &item.Password, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}
