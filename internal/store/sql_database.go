// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

// DB is a database handle bound to one driver. It carries the SQL builder
// with the driver's placeholder format and the driver's error classifier.
type DB struct {
	*sql.DB
	driver             string
	queries            queryBuilder
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, driver string, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		driver:             driver,
		queries:            newQueryBuilder(driver),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded migrations of the driver's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// wrapError turns a driver error into a store error. Unique violations
// become duplicate, transient failures become ErrStorageUnavailable and
// everything else is wrapped in fallback.
func (db *DB) wrapError(err, duplicate, fallback error) error {
	switch db.errorClassificator.Classify(err) {
	case Duplicate:
		if duplicate != nil {
			return duplicate
		}
	case Retryable:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
