// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	usersTable      = models.User{}.TableName()
	vaultItemsTable = models.CipheredItem{}.TableName()

	userColumns = []string{"user_id", "username", "password", "created_at", "updated_at"}
	itemColumns = []string{"id", "user_id", "site", "username", "password", "created_at", "updated_at"}
)

// queryBuilder builds every statement of the store with the placeholder
// format of one driver. Both dialects support RETURNING.
type queryBuilder struct {
	sb sq.StatementBuilderType
}

func newQueryBuilder(driver string) queryBuilder {
	format := sq.PlaceholderFormat(sq.Question)
	if driver == config.DriverPostgres {
		format = sq.Dollar
	}
	return queryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func (q queryBuilder) insertUser(user models.User, now time.Time) (string, []any, error) {
	return q.sb.Insert(usersTable).
		Columns("username", "password", "created_at", "updated_at").
		Values(user.Username, user.Password, now, now).
		Suffix(returning(userColumns)).
		ToSql()
}

func (q queryBuilder) selectUser(where sq.Eq) (string, []any, error) {
	return q.sb.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func (q queryBuilder) updateUserPassword(userID int64, hash string, now time.Time) (string, []any, error) {
	return q.sb.Update(usersTable).
		Set("password", hash).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func (q queryBuilder) selectItems(userID int64) (string, []any, error) {
	return q.sb.Select(itemColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func (q queryBuilder) insertItem(item models.CipheredItem, now time.Time) (string, []any, error) {
	return q.sb.Insert(vaultItemsTable).
		Columns(itemColumns...).
		Values(item.ID, item.UserID, item.Site, item.Username, item.Password, now, now).
		Suffix(returning(itemColumns)).
		ToSql()
}

func (q queryBuilder) updateItem(item models.CipheredItem, now time.Time) (string, []any, error) {
	return q.sb.Update(vaultItemsTable).
		Set("site", item.Site).
		Set("username", item.Username).
		Set("password", item.Password).
		Set("updated_at", now).
		Where(sq.Eq{"id": item.ID, "user_id": item.UserID}).
		Suffix(returning(itemColumns)).
		ToSql()
}

func (q queryBuilder) deleteItem(id string, userID int64) (string, []any, error) {
	return q.sb.Delete(vaultItemsTable).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func buildError(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}
