package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

func newTestDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	var classifier ErrorClassificator = NewPostgresErrorClassifier()
	if driver == config.DriverSQLite {
		classifier = NewSQLiteErrorClassifier()
	}
	return newDB(conn, driver, classifier, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, config.DriverPostgres)
	repo := NewUserRepository(db, logger.Nop()).(*userRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{"user_id", "username", "password", "created_at", "updated_at"}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	rows := sqlmock.NewRows(userRowColumns).AddRow(1, "john", "hash", fixedNow, fixedNow)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john", "hash", fixedNow, fixedNow).
		WillReturnRows(rows)

	created, err := repo.CreateUser(context.Background(), models.User{Username: "john", Password: "hash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Username != "john" {
		t.Errorf("expected username john, got %s", created.Username)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at %v, got %v", fixedNow, created.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_SQLiteUniqueViolation(t *testing.T) {
	db, mock := newTestDB(t, config.DriverSQLite)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_TransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped ErrExecutingQuery, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// intentionally wrong shape → scan error
	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(1)
	mock.ExpectQuery("INSERT INTO users").WillReturnRows(rows)

	if _, err := repo.CreateUser(context.Background(), models.User{Username: "john"}); err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	rows := sqlmock.NewRows(userRowColumns).AddRow(1, "john", "hash", fixedNow, fixedNow)
	mock.ExpectQuery("SELECT user_id, username, password, created_at, updated_at FROM users").
		WithArgs("john").
		WillReturnRows(rows)

	found, err := repo.FindUserByUsername(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "john" || found.Password != "hash" {
		t.Errorf("unexpected user %+v", found)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "john")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	rows := sqlmock.NewRows(userRowColumns).AddRow(5, "john", "hash", fixedNow, fixedNow)
	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	found, err := repo.FindUserByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 5 {
		t.Errorf("expected UserID=5, got %d", found.UserID)
	}
}

func TestFindUserByUsername_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByUsername(context.Background(), "john")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected wrapped ErrExecutingQuery, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "unknown user", result: sqlmock.NewResult(0, 0), wantErr: ErrUserNotFound},
		{name: "driver error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
		{name: "deadlock", execErr: pgError(pgerrcode.DeadlockDetected), wantErr: ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			exp := mock.ExpectExec("UPDATE users SET password").WithArgs("new-hash", fixedNow, int64(3))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.UpdatePassword(context.Background(), 3, "new-hash")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
