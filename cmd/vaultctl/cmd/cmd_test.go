package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

type fakeVault struct {
	username string
	master   string
	items    []models.VaultItem
	corrupt  []service.CorruptItem

	changeErr error
	loggedIn  bool
	loggedOut bool
}

func (f *fakeVault) Signup(_ context.Context, username, password string) (service.LoginResult, error) {
	if username == "taken" {
		return service.LoginResult{}, service.ErrUsernameTaken
	}
	f.username, f.master, f.loggedIn = username, password, true
	return service.LoginResult{}, nil
}

func (f *fakeVault) Login(_ context.Context, username, password string) (service.LoginResult, error) {
	if username != f.username || password != f.master {
		return service.LoginResult{}, service.ErrInvalidCredentials
	}
	f.loggedIn = true
	return service.LoginResult{Items: f.items, Corrupt: f.corrupt}, nil
}

func (f *fakeVault) MigratePending(context.Context) (int, error) {
	return 0, nil
}

func (f *fakeVault) AddItem(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
	item.ID = "new-id"
	f.items = append([]models.VaultItem{item}, f.items...)
	return item, nil
}

func (f *fakeVault) EditItem(_ context.Context, id string, item models.VaultItem) (models.VaultItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			item.ID = id
			f.items[i] = item
			return item, nil
		}
	}
	return models.VaultItem{}, service.ErrItemNotFound
}

func (f *fakeVault) DeleteItem(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return service.ErrItemNotFound
}

func (f *fakeVault) ChangePassword(_ context.Context, _, newPassword string) error {
	if f.changeErr != nil {
		return f.changeErr
	}
	f.master = newPassword
	return nil
}

func (f *fakeVault) Logout() {
	f.loggedOut = true
}

func (f *fakeVault) Items() []models.VaultItem {
	return append([]models.VaultItem(nil), f.items...)
}

func (f *fakeVault) Corrupt() []service.CorruptItem {
	return f.corrupt
}

func (f *fakeVault) Username() string {
	return f.username
}

func (f *fakeVault) UserID() int64 {
	return 42
}

func (f *fakeVault) State() service.SessionState {
	return service.StateActive
}

func (f *fakeVault) Status() service.SessionStatus {
	return service.SessionStatus{}
}

func newFakeVault() *fakeVault {
	return &fakeVault{
		username: "alice",
		master:   "master",
		items: []models.VaultItem{
			{ID: "i2", Site: "b.com", Username: "bob", Password: "secret-b"},
			{ID: "i1", Site: "a.com", Username: "al", Password: "secret-a"},
		},
	}
}

// run executes vaultctl against v and returns stdout, stderr and the error.
func run(t *testing.T, v *fakeVault, stdin string, args ...string) (string, string, error) {
	t.Helper()

	for _, env := range []string{envUser, envPassword, envNewPassword, envItemPassword} {
		t.Setenv(env, "")
	}

	open := func(string) (service.ClientVaultService, error) { return v, nil }
	root := NewRootCmd(open, "test")

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSignup(t *testing.T) {
	v := &fakeVault{}

	out, _, err := run(t, v, "pw\n", "signup", "-u", "carol")

	require.NoError(t, err)
	assert.Equal(t, "account carol created (id 42)\n", out)
	assert.Equal(t, "pw", v.master)
	assert.True(t, v.loggedOut)
}

func TestSignup_Taken(t *testing.T) {
	_, _, err := run(t, &fakeVault{}, "pw\n", "signup", "-u", "taken")

	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestNoUser(t *testing.T) {
	_, _, err := run(t, newFakeVault(), "master\n", "list")

	assert.ErrorIs(t, err, errNoUser)
}

func TestMissingMasterPassword(t *testing.T) {
	_, _, err := run(t, newFakeVault(), "", "list", "-u", "alice")

	assert.ErrorIs(t, err, errMissingInput)
}

func TestLoginFailure(t *testing.T) {
	v := newFakeVault()

	_, _, err := run(t, v, "wrong\n", "list", "-u", "alice")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.True(t, v.loggedOut)
}

func TestList_MasksPasswords(t *testing.T) {
	out, _, err := run(t, newFakeVault(), "master\n", "list", "-u", "alice")

	require.NoError(t, err)
	assert.Contains(t, out, "b.com")
	assert.Contains(t, out, "a.com")
	assert.Contains(t, out, hiddenPassword)
	assert.NotContains(t, out, "secret-a")
	assert.Less(t, strings.Index(out, "b.com"), strings.Index(out, "a.com"))
}

func TestList_ShowJSON(t *testing.T) {
	out, _, err := run(t, newFakeVault(), "master\n", "list", "-u", "alice", "--show", "--json")
	require.NoError(t, err)

	var items []models.VaultItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "secret-b", items[0].Password)
}

func TestList_PasswordFromEnv(t *testing.T) {
	v := newFakeVault()
	open := func(string) (service.ClientVaultService, error) { return v, nil }
	t.Setenv(envPassword, "master")

	root := NewRootCmd(open, "test")
	var stdout bytes.Buffer
	root.SetIn(strings.NewReader(""))
	root.SetOut(&stdout)
	root.SetArgs([]string{"ls", "-u", "alice"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "b.com")
}

func TestList_EmptyAndCorrupt(t *testing.T) {
	out, _, err := run(t, &fakeVault{username: "alice", master: "m"}, "m\n", "list", "-u", "alice")
	require.NoError(t, err)
	assert.Equal(t, "vault is empty\n", out)

	v := &fakeVault{username: "alice", master: "m", corrupt: []service.CorruptItem{{ID: "bad", Fields: []string{"site"}}}}
	out, errOut, err := run(t, v, "m\n", "list", "-u", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "[corrupt: site]")
	assert.Contains(t, errOut, "item bad could not be decrypted")
}

func TestAdd_ReadsItemPasswordAfterMaster(t *testing.T) {
	v := newFakeVault()

	out, _, err := run(t, v, "master\nitem-pw\n", "add", "-u", "alice", "c.com", "carol")

	require.NoError(t, err)
	assert.Equal(t, "added new-id\n", out)
	assert.Equal(t, models.VaultItem{ID: "new-id", Site: "c.com", Username: "carol", Password: "item-pw"}, v.items[0])
}

func TestAdd_MissingItemPassword(t *testing.T) {
	v := newFakeVault()

	_, _, err := run(t, v, "master\n", "add", "-u", "alice", "c.com", "carol")

	assert.ErrorIs(t, err, errMissingInput)
	assert.Len(t, v.items, 2)
}

func TestEdit(t *testing.T) {
	v := newFakeVault()

	out, _, err := run(t, v, "master\nnew-secret\n", "edit", "-u", "alice", "i1", "--site", "aa.com", "--password")

	require.NoError(t, err)
	assert.Equal(t, "updated i1\n", out)
	assert.Equal(t, models.VaultItem{ID: "i1", Site: "aa.com", Username: "al", Password: "new-secret"}, v.items[1])
}

func TestEdit_NothingToChange(t *testing.T) {
	_, _, err := run(t, newFakeVault(), "master\n", "edit", "-u", "alice", "i1")

	assert.ErrorIs(t, err, errMissingInput)
}

func TestEdit_UnknownItem(t *testing.T) {
	_, _, err := run(t, newFakeVault(), "master\n", "edit", "-u", "alice", "nope", "--site", "x")

	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestRm(t *testing.T) {
	v := newFakeVault()

	out, _, err := run(t, v, "master\n", "rm", "-u", "alice", "i1", "i2")

	require.NoError(t, err)
	assert.Equal(t, "removed i1\nremoved i2\n", out)
	assert.Empty(t, v.items)
}

func TestRm_StopsAtUnknown(t *testing.T) {
	v := newFakeVault()

	out, _, err := run(t, v, "master\n", "rm", "-u", "alice", "nope", "i1")

	assert.ErrorIs(t, err, service.ErrItemNotFound)
	assert.Empty(t, out)
	assert.Len(t, v.items, 2)
}

func TestPasswd(t *testing.T) {
	v := newFakeVault()

	out, _, err := run(t, v, "master\nnext\n", "passwd", "-u", "alice")

	require.NoError(t, err)
	assert.Equal(t, "master password changed\n", out)
	assert.Equal(t, "next", v.master)
}

func TestPasswd_SamePassword(t *testing.T) {
	_, _, err := run(t, newFakeVault(), "master\nmaster\n", "passwd", "-u", "alice")

	assert.Error(t, err)
}

func TestPasswd_PartialFailure(t *testing.T) {
	v := newFakeVault()
	v.changeErr = &service.PasswordChangeError{Completed: 1, Total: 2, FailedItemID: "i1", Err: errors.New("boom")}

	_, errOut, err := run(t, v, "master\nnext\n", "passwd", "-u", "alice")

	var pce *service.PasswordChangeError
	require.ErrorAs(t, err, &pce)
	assert.Contains(t, errOut, "re-encrypted 1 of 2 items")
	assert.Contains(t, errOut, "failed at item i1")
	assert.Equal(t, "master", v.master)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, newFakeVault(), "", "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
