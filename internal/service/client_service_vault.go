// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// SessionState is the lifecycle stage of a [VaultSession].
type SessionState int

const (
	StateLoggedOut SessionState = iota
	StateAuthenticating
	StateActive
)

func (s SessionState) String() string {
	switch s {
	case StateLoggedOut:
		return "logged out"
	case StateAuthenticating:
		return "authenticating"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// SessionStatus is a snapshot of how far the in-memory vault is ahead of
// storage.
type SessionStatus struct {
	State SessionState

	// PendingMigration counts legacy plaintext items not yet re-encrypted
	// at rest.
	PendingMigration int
	// Stranded counts items already re-encrypted under a new key by a
	// password change that did not complete.
	Stranded int
	// InFlight counts writes currently waiting on storage.
	InFlight int
}

// PendingWrites is the total number of items whose stored form differs from
// what the session expects.
func (s SessionStatus) PendingWrites() int {
	return s.PendingMigration + s.Stranded + s.InFlight
}

// Synced reports whether storage matches the session.
func (s SessionStatus) Synced() bool {
	return s.PendingWrites() == 0
}

// CorruptItem is a stored item where some fields verified and some did not.
// It is never shown as an entry, only reported.
type CorruptItem struct {
	ID     string
	Fields []string
}

// LoginResult describes the vault as it was loaded.
type LoginResult struct {
	Items            []models.VaultItem
	MigratedCount    int
	Corrupt          []CorruptItem
	PendingMigration []string
}

var _ ClientVaultService = (*VaultSession)(nil)

// VaultSession holds the encryption key and the plaintext vault of one logged
// in user. A session has a single logical caller; only the login decrypt
// fan-out runs in parallel.
type VaultSession struct {
	adapter adapter.ServerAdapter
	deriver *crypto.KeyDeriver
	codec   *crypto.ItemCodec
	workers int
	logger  *logger.Logger

	state    SessionState
	user     models.User
	key      *crypto.EncryptionKey
	items    []models.VaultItem
	corrupt  []CorruptItem
	pending  []string
	stranded []string

	inFlight atomic.Int32
}

// NewVaultSession returns a logged out session. workers bounds the number of
// items decrypted concurrently during login; values below 1 mean 1.
func NewVaultSession(
	serverAdapter adapter.ServerAdapter,
	deriver *crypto.KeyDeriver,
	codec *crypto.ItemCodec,
	workers int,
	log *logger.Logger,
) *VaultSession {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}

	return &VaultSession{
		adapter: serverAdapter,
		deriver: deriver,
		codec:   codec,
		workers: workers,
		logger:  log,
	}
}

// Signup registers username and starts a session with an empty vault.
func (s *VaultSession) Signup(ctx context.Context, username, password string) (LoginResult, error) {
	if s.state != StateLoggedOut {
		return LoginResult{}, ErrSessionAlreadyActive
	}
	s.state = StateAuthenticating

	user, err := s.adapter.Register(ctx, username, password)
	if err != nil {
		s.state = StateLoggedOut
		s.logger.Err(err).Msg("signup failed")
		return LoginResult{}, mapAdapterError(err)
	}

	s.activate(user, s.deriver.Derive(password, username), nil)
	s.logger.Info().Int64("user_id", user.UserID).Msg("account registered")

	return LoginResult{Items: []models.VaultItem{}}, nil
}

// Login authenticates, decrypts the vault and migrates legacy plaintext
// items. Migration and corruption never fail the login; they are reported in
// the result.
func (s *VaultSession) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if s.state != StateLoggedOut {
		return LoginResult{}, ErrSessionAlreadyActive
	}
	s.state = StateAuthenticating

	user, stored, err := s.adapter.Authenticate(ctx, username, password)
	if err != nil {
		s.state = StateLoggedOut
		s.logger.Err(err).Msg("authentication failed")
		return LoginResult{}, mapAdapterError(err)
	}

	key := s.deriver.Derive(password, username)

	outcomes, err := s.decryptAll(key, stored)
	if err != nil {
		key.Destroy()
		s.state = StateLoggedOut
		return LoginResult{}, err
	}

	items := make([]models.VaultItem, 0, len(outcomes))
	var legacy []string
	var corrupt []CorruptItem
	for _, o := range outcomes {
		switch o.Kind {
		case crypto.OutcomeDecrypted:
			items = append(items, o.Item)
		case crypto.OutcomeLegacyPlaintext:
			items = append(items, o.Item)
			legacy = append(legacy, o.ItemID)
		case crypto.OutcomeCorrupt:
			c := CorruptItem{ID: o.ItemID}
			for _, f := range []string{crypto.FieldSite, crypto.FieldUsername, crypto.FieldPassword} {
				if _, bad := o.FieldErrors[f]; bad {
					c.Fields = append(c.Fields, f)
				}
			}
			corrupt = append(corrupt, c)
			s.logger.Warn().Str("item_id", c.ID).Strs("fields", c.Fields).Msg("vault item is corrupt")
		}
	}

	s.activate(user, key, items)
	s.corrupt = corrupt
	s.pending = legacy

	migrated, _ := s.migrate(ctx)

	s.logger.Info().
		Int64("user_id", user.UserID).
		Int("items", len(items)).
		Int("migrated", migrated).
		Int("pending_migration", len(s.pending)).
		Int("corrupt", len(corrupt)).
		Msg("vault unlocked")

	return LoginResult{
		Items:            s.Items(),
		MigratedCount:    migrated,
		Corrupt:          s.Corrupt(),
		PendingMigration: slices.Clone(s.pending),
	}, nil
}

// MigratePending retries re-encryption of legacy items left over from login.
// Items that still fail stay pending; their errors are joined.
func (s *VaultSession) MigratePending(ctx context.Context) (int, error) {
	if s.state != StateActive {
		return 0, ErrSessionNotActive
	}

	return s.migrate(ctx)
}

// AddItem encrypts item, stores it and puts it at the head of the vault.
func (s *VaultSession) AddItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	if s.state != StateActive {
		return models.VaultItem{}, ErrSessionNotActive
	}

	fields, err := s.codec.EncryptItem(s.key, item)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("encrypt item: %w", err)
	}

	s.inFlight.Add(1)
	id, err := s.adapter.CreateItem(ctx, s.user.UserID, fields)
	s.inFlight.Add(-1)
	if err != nil {
		s.logger.Err(err).Msg("item creation failed")
		return models.VaultItem{}, mapAdapterError(err)
	}

	item.ID = id
	s.items = slices.Insert(s.items, 0, item)
	s.logger.Debug().Str("item_id", id).Msg("item created")

	return item, nil
}

// EditItem re-encrypts all three fields of the item with the given id and
// replaces it in memory once storage accepted the write.
func (s *VaultSession) EditItem(ctx context.Context, id string, item models.VaultItem) (models.VaultItem, error) {
	if s.state != StateActive {
		return models.VaultItem{}, ErrSessionNotActive
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.VaultItem{}, ErrItemNotFound
	}

	fields, err := s.codec.EncryptItem(s.key, item)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("encrypt item: %w", err)
	}

	s.inFlight.Add(1)
	err = s.adapter.UpdateItem(ctx, id, s.user.UserID, fields)
	s.inFlight.Add(-1)
	if err != nil {
		s.logger.Err(err).Str("item_id", id).Msg("item update failed")
		return models.VaultItem{}, mapAdapterError(err)
	}

	item.ID = id
	s.items[idx] = item
	s.pending = remove(s.pending, id)
	s.stranded = remove(s.stranded, id)
	s.logger.Debug().Str("item_id", id).Msg("item updated")

	return item, nil
}

// DeleteItem removes the item from storage and then from memory. Corrupt
// items can be deleted by id as well.
func (s *VaultSession) DeleteItem(ctx context.Context, id string) error {
	if s.state != StateActive {
		return ErrSessionNotActive
	}

	idx := s.indexOf(id)
	corruptIdx := slices.IndexFunc(s.corrupt, func(c CorruptItem) bool { return c.ID == id })
	if idx < 0 && corruptIdx < 0 {
		return ErrItemNotFound
	}

	s.inFlight.Add(1)
	err := s.adapter.DeleteItem(ctx, id, s.user.UserID)
	s.inFlight.Add(-1)
	if err != nil {
		s.logger.Err(err).Str("item_id", id).Msg("item deletion failed")
		return mapAdapterError(err)
	}

	if idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
	} else {
		s.corrupt = slices.Delete(s.corrupt, corruptIdx, corruptIdx+1)
	}
	s.pending = remove(s.pending, id)
	s.stranded = remove(s.stranded, id)
	s.logger.Debug().Str("item_id", id).Msg("item deleted")

	return nil
}

// ChangePassword re-encrypts the vault under newPassword.
//
// The old password is checked against the server first. Items are then
// re-encrypted and written one by one; the first failure aborts with a
// *PasswordChangeError and leaves both the account password and the session
// key untouched. The account password is changed only after every item was
// written, and the session switches to the new key only after that.
//
// ctx is checked between items. A write that has started is always allowed to
// finish.
func (s *VaultSession) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if s.state != StateActive {
		return ErrSessionNotActive
	}
	if newPassword == "" {
		return fmt.Errorf("%w: empty password", ErrInvalidNewPassword)
	}

	username := s.user.Username
	if _, _, err := s.adapter.Authenticate(ctx, username, oldPassword); err != nil {
		s.logger.Err(err).Msg("old password re-validation failed")
		return mapAdapterError(err)
	}

	newKey := s.deriver.Derive(newPassword, username)
	total := len(s.items)
	fail := func(completed int, itemID string, err error) error {
		newKey.Destroy()
		s.stranded = s.collectIDs(completed)
		s.logger.Error().
			Err(err).
			Str("item_id", itemID).
			Int("completed", completed).
			Int("total", total).
			Msg("password change aborted")
		return &PasswordChangeError{Completed: completed, Total: total, FailedItemID: itemID, Err: err}
	}

	for i, item := range s.items {
		if err := ctx.Err(); err != nil {
			return fail(i, "", err)
		}

		fields, err := s.codec.EncryptItem(newKey, item)
		if err != nil {
			return fail(i, item.ID, fmt.Errorf("encrypt item: %w", err))
		}

		s.inFlight.Add(1)
		err = s.adapter.UpdateItem(context.WithoutCancel(ctx), item.ID, s.user.UserID, fields)
		s.inFlight.Add(-1)
		if err != nil {
			return fail(i, item.ID, mapAdapterError(err))
		}
	}

	if err := ctx.Err(); err != nil {
		return fail(total, "", err)
	}

	err := s.adapter.ChangeAccountPassword(context.WithoutCancel(ctx), s.user.UserID, oldPassword, newPassword)
	if err != nil {
		return fail(total, "", fmt.Errorf("change account password: %w", mapAdapterError(err)))
	}

	oldKey := s.key
	s.key = newKey
	oldKey.Destroy()
	s.stranded = nil
	s.pending = nil

	if len(s.corrupt) > 0 {
		s.logger.Warn().Int("corrupt", len(s.corrupt)).Msg("corrupt items were left under the old key")
	}
	s.logger.Info().Int("items", total).Msg("password changed")

	return nil
}

// Logout destroys the key and forgets the vault.
func (s *VaultSession) Logout() {
	s.key.Destroy()
	s.key = nil
	s.items = nil
	s.corrupt = nil
	s.pending = nil
	s.stranded = nil
	s.user = models.User{}
	s.adapter.SetToken("")
	s.state = StateLoggedOut
}

// Items returns a copy of the vault, most recent first.
func (s *VaultSession) Items() []models.VaultItem {
	return slices.Clone(s.items)
}

// Corrupt returns a copy of the items that failed to decrypt partially.
func (s *VaultSession) Corrupt() []CorruptItem {
	return slices.Clone(s.corrupt)
}

func (s *VaultSession) Username() string {
	return s.user.Username
}

func (s *VaultSession) UserID() int64 {
	return s.user.UserID
}

func (s *VaultSession) State() SessionState {
	return s.state
}

func (s *VaultSession) Status() SessionStatus {
	return SessionStatus{
		State:            s.state,
		PendingMigration: len(s.pending),
		Stranded:         len(s.stranded),
		InFlight:         int(s.inFlight.Load()),
	}
}

func (s *VaultSession) activate(user models.User, key *crypto.EncryptionKey, items []models.VaultItem) {
	if items == nil {
		items = []models.VaultItem{}
	}
	s.user = user
	s.key = key
	s.items = items
	s.corrupt = nil
	s.pending = nil
	s.stranded = nil
	s.state = StateActive
}

// decryptAll decrypts stored concurrently and returns outcomes in the order
// of stored.
func (s *VaultSession) decryptAll(key *crypto.EncryptionKey, stored []models.CipheredItem) ([]crypto.DecryptionOutcome, error) {
	outcomes := make([]crypto.DecryptionOutcome, len(stored))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, item := range stored {
		g.Go(func() error {
			o, err := s.codec.DecryptItem(key, item)
			if err != nil {
				return fmt.Errorf("decrypt item %s: %w", item.ID, err)
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// migrate re-encrypts pending legacy items one at a time. A failure leaves
// the item pending and the loop continues.
func (s *VaultSession) migrate(ctx context.Context) (int, error) {
	var (
		migrated int
		errs     []error
		still    []string
	)

	for _, id := range s.pending {
		idx := s.indexOf(id)
		if idx < 0 {
			continue
		}

		fields, err := s.codec.EncryptItem(s.key, s.items[idx])
		if err != nil {
			s.logger.Warn().Err(err).Str("item_id", id).Msg("legacy item encryption failed")
			still = append(still, id)
			errs = append(errs, fmt.Errorf("migrate item %s: %w", id, err))
			continue
		}

		s.inFlight.Add(1)
		err = s.adapter.UpdateItem(ctx, id, s.user.UserID, fields)
		s.inFlight.Add(-1)
		if err != nil {
			s.logger.Warn().Err(err).Str("item_id", id).Msg("legacy item migration failed")
			still = append(still, id)
			errs = append(errs, fmt.Errorf("migrate item %s: %w", id, mapAdapterError(err)))
			continue
		}

		migrated++
		s.logger.Debug().Str("item_id", id).Msg("legacy item migrated")
	}

	s.pending = still

	return migrated, errors.Join(errs...)
}

func (s *VaultSession) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it models.VaultItem) bool { return it.ID == id })
}

func (s *VaultSession) collectIDs(n int) []string {
	ids := make([]string, 0, n)
	for _, it := range s.items[:n] {
		ids = append(ids, it.ID)
	}
	return ids
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
