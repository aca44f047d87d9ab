package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// newSQLiteStorages opens a migrated database file in a temp dir.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	dsn := filepath.Join(t.TempDir(), "nested", "vault.db")
	db, err := NewConnect(ctx, config.DB{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	assert.Equal(t, config.DriverSQLite, db.Driver())

	return NewStorages(db, logger.Nop())
}

func TestSQLite_UsersAndItems(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	user, err := s.UserRepository.CreateUser(ctx, models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	assert.Positive(t, user.UserID)

	_, err = s.UserRepository.CreateUser(ctx, models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	found, err := s.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, found.UserID)

	_, err = s.UserRepository.FindUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, s.UserRepository.UpdatePassword(ctx, user.UserID, "hash2"))
	found, err = s.UserRepository.FindUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "hash2", found.Password)

	items := s.VaultItemRepository.(*vaultItemRepository)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Minute)
		items.now = func() time.Time { return at }
		_, err = items.CreateItem(ctx, models.CipheredItem{ID: id, UserID: user.UserID, Site: "s", Username: "u", Password: "p"})
		require.NoError(t, err)
	}

	list, err := items.ListItems(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].ID, list[1].ID, list[2].ID})

	updated, err := items.UpdateItem(ctx, models.CipheredItem{ID: "first", UserID: user.UserID, Site: "s2", Username: "u2", Password: "p2"})
	require.NoError(t, err)
	assert.Equal(t, models.CipheredField("p2"), updated.Password)

	_, err = items.UpdateItem(ctx, models.CipheredItem{ID: "first", UserID: user.UserID + 1, Site: "x", Username: "x", Password: "x"})
	assert.ErrorIs(t, err, ErrItemNotFound, "another user cannot overwrite the item")

	require.NoError(t, items.DeleteItem(ctx, "second", user.UserID))
	assert.ErrorIs(t, items.DeleteItem(ctx, "second", user.UserID), ErrItemNotFound)

	list, err = items.ListItems(ctx, user.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSQLite_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "vault.db")

	db, err := NewConnectSQLite(ctx, config.DB{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}
