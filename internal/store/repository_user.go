// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    utcNow,
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned UserID and timestamps.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - transient driver failure → [ErrStorageUnavailable].
//   - anything else → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.insertUser(user, r.now())
	if err != nil {
		return models.User{}, buildError(err)
	}

	var created models.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&created.UserID, &created.Username, &created.Password, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error creating user")
		return models.User{}, r.db.wrapError(err, ErrUsernameAlreadyExists, ErrExecutingQuery)
	}

	return created, nil
}

// FindUserByUsername returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"username": username})
}

// FindUserByID returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectUser(where)
	if err != nil {
		return models.User{}, buildError(err)
	}

	var found models.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&found.UserID, &found.Username, &found.Password, &found.CreatedAt, &found.UpdatedAt)
	if isNoRows(err) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Msg("error finding user")
		return models.User{}, r.db.wrapError(err, nil, ErrExecutingQuery)
	}

	return found, nil
}

// UpdatePassword replaces the password hash of userID.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.updateUserPassword(userID, passwordHash, r.now())
	if err != nil {
		return buildError(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error updating password")
		return r.db.wrapError(err, nil, ErrExecutingStatement)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
