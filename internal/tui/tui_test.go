package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

func TestMain(m *testing.M) {
	cursorMode = cursor.CursorStatic
	statusTTL = time.Millisecond
	os.Exit(m.Run())
}

// fakeVault is an in-memory ClientVaultService.
type fakeVault struct {
	username string
	password string
	items    []models.VaultItem
	corrupt  []service.CorruptItem
	pending  int

	loginErr   error
	saveErr    error
	changeErr  error
	migrateErr error

	loggedOut bool
	nextID    int
}

func (f *fakeVault) Signup(_ context.Context, username, password string) (service.LoginResult, error) {
	f.username, f.password = username, password
	return service.LoginResult{}, f.loginErr
}

func (f *fakeVault) Login(_ context.Context, username, password string) (service.LoginResult, error) {
	if f.loginErr != nil {
		return service.LoginResult{}, f.loginErr
	}
	f.username = username
	return service.LoginResult{Items: f.items, Corrupt: f.corrupt, MigratedCount: 1, PendingMigration: make([]string, f.pending)}, nil
}

func (f *fakeVault) MigratePending(context.Context) (int, error) {
	if f.migrateErr != nil {
		return 0, f.migrateErr
	}
	n := f.pending
	f.pending = 0
	return n, nil
}

func (f *fakeVault) AddItem(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
	if f.saveErr != nil {
		return models.VaultItem{}, f.saveErr
	}
	f.nextID++
	item.ID = strings.Repeat("n", f.nextID)
	f.items = append([]models.VaultItem{item}, f.items...)
	return item, nil
}

func (f *fakeVault) EditItem(_ context.Context, id string, item models.VaultItem) (models.VaultItem, error) {
	if f.saveErr != nil {
		return models.VaultItem{}, f.saveErr
	}
	item.ID = id
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = item
		}
	}
	return item, nil
}

func (f *fakeVault) DeleteItem(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	for i := range f.corrupt {
		if f.corrupt[i].ID == id {
			f.corrupt = append(f.corrupt[:i], f.corrupt[i+1:]...)
			return nil
		}
	}
	return service.ErrItemNotFound
}

func (f *fakeVault) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	if f.changeErr != nil {
		return f.changeErr
	}
	f.password = newPassword
	return nil
}

func (f *fakeVault) Logout() {
	f.loggedOut = true
	f.items = nil
	f.username = ""
}

func (f *fakeVault) Items() []models.VaultItem {
	return append([]models.VaultItem(nil), f.items...)
}

func (f *fakeVault) Corrupt() []service.CorruptItem {
	return append([]service.CorruptItem(nil), f.corrupt...)
}

func (f *fakeVault) Username() string {
	return f.username
}

func (f *fakeVault) UserID() int64 {
	return 1
}

func (f *fakeVault) State() service.SessionState {
	return service.StateActive
}

func (f *fakeVault) Status() service.SessionStatus {
	return service.SessionStatus{PendingMigration: f.pending}
}

var _ service.ClientVaultService = (*fakeVault)(nil)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestRoot(v *fakeVault, copied *string) rootModel {
	copyFn := func(s string) error {
		if copied != nil {
			*copied = s
		}
		return nil
	}
	return newRootModel(context.Background(), v, models.NewAppBuildInfo("1.0.0", "today", "abc"), copyFn)
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k string) (tea.Model, tea.Cmd) {
	switch k {
	case "enter":
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "tab":
		return m.Update(tea.KeyMsg{Type: tea.KeyTab})
	case "esc":
		return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	case "ctrl+t":
		return m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	case "ctrl+v":
		return m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	case "ctrl+c":
		return m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// drain runs cmd and feeds every resulting message back into m until no
// command is left. Ticks and batches are skipped.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()

	for i := 0; cmd != nil && i < 20; i++ {
		msg := cmd()
		switch msg.(type) {
		case nil, clearStatusMsg, tea.QuitMsg, tea.BatchMsg:
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func loginRoot(t *testing.T, v *fakeVault) tea.Model {
	t.Helper()

	var m tea.Model = newTestRoot(v, nil)
	m = typeText(m, "alice")
	m, _ = press(m, "tab")
	m = typeText(m, "pw")
	m, cmd := press(m, "enter")
	return drain(t, m, cmd)
}

func current(m tea.Model) string {
	return m.(rootModel).current
}

func vaultPage(m tea.Model) *vaultModel {
	return m.(rootModel).pages[pageVault].(*vaultModel)
}

// ─────────────────────────────────────────────
// Auth
// ─────────────────────────────────────────────

func TestAuth_LoginNavigatesToVault(t *testing.T) {
	v := &fakeVault{items: []models.VaultItem{{ID: "1", Site: "example.com", Username: "alice", Password: "p@ss"}}}

	m := loginRoot(t, v)

	assert.Equal(t, pageVault, current(m))
	view := m.View()
	assert.Contains(t, view, "example.com")
	assert.NotContains(t, view, "p@ss")
	assert.Contains(t, view, maskedPassword)
}

func TestAuth_LoginErrorStaysOnPage(t *testing.T) {
	v := &fakeVault{loginErr: service.ErrInvalidCredentials}

	m := loginRoot(t, v)

	assert.Equal(t, pageAuth, current(m))
	assert.Contains(t, m.View(), "invalid username or password")
}

func TestAuth_RequiresFields(t *testing.T) {
	var m tea.Model = newTestRoot(&fakeVault{}, nil)

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "username and password are required")
}

func TestAuth_SignupChecksRepeat(t *testing.T) {
	v := &fakeVault{}
	var m tea.Model = newTestRoot(v, nil)

	m, _ = press(m, "ctrl+t")
	m = typeText(m, "bob")
	m, _ = press(m, "tab")
	m = typeText(m, "pw1")
	m, _ = press(m, "tab")
	m = typeText(m, "pw2")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "passwords do not match")

	m, _ = press(m, "tab")
	m, _ = press(m, "tab")
	m, _ = press(m, "tab")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(m, "1")
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, pageVault, current(m))
	assert.Equal(t, "pw1", v.password)
}

func TestRoot_BuildInfoOverlay(t *testing.T) {
	var m tea.Model = newTestRoot(&fakeVault{}, nil)

	m, _ = press(m, "ctrl+v")
	assert.Contains(t, m.View(), "1.0.0")

	m, _ = press(m, "esc")
	assert.NotContains(t, m.View(), "Build commit:")
}

func TestRoot_CtrlCQuits(t *testing.T) {
	_, cmd := press(newTestRoot(&fakeVault{}, nil), "ctrl+c")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ─────────────────────────────────────────────
// Vault
// ─────────────────────────────────────────────

func TestVault_RevealAndCopy(t *testing.T) {
	v := &fakeVault{items: []models.VaultItem{{ID: "1", Site: "example.com", Username: "alice", Password: "p@ss"}}}
	var copied string
	var m tea.Model = newTestRoot(v, &copied)
	m = typeText(m, "alice")
	m, _ = press(m, "tab")
	m = typeText(m, "pw")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	m, _ = press(m, "r")
	assert.Contains(t, m.View(), "p@ss")

	m, cmd = press(m, "c")
	m = drain(t, m, cmd)
	assert.Equal(t, "p@ss", copied)
	assert.Contains(t, m.View(), "password copied")

	m, cmd = press(m, "u")
	drain(t, m, cmd)
	assert.Equal(t, "alice", copied)
}

func TestVault_LoginWarnings(t *testing.T) {
	v := &fakeVault{
		pending: 2,
		corrupt: []service.CorruptItem{{ID: "bad", Fields: []string{"password"}}},
	}

	view := loginRoot(t, v).View()

	assert.Contains(t, view, "1 legacy item(s) were encrypted")
	assert.Contains(t, view, "2 legacy item(s) are not encrypted")
	assert.Contains(t, view, "1 item(s) could not be decrypted")
	assert.Contains(t, view, "[corrupt: password]")
	assert.Contains(t, view, "2 unsynced")
}

func TestVault_RetryMigration(t *testing.T) {
	v := &fakeVault{pending: 2}
	m := loginRoot(t, v)

	m, cmd := press(m, "m")
	m = drain(t, m, cmd)

	assert.Contains(t, m.View(), "migrated 2 legacy item(s)")
	assert.NotContains(t, m.View(), "not encrypted on the server")
}

func TestVault_RetryMigrationFailure(t *testing.T) {
	v := &fakeVault{pending: 1, migrateErr: errors.New("server down")}
	m := loginRoot(t, v)

	m, cmd := press(m, "m")
	m = drain(t, m, cmd)

	assert.Contains(t, m.View(), "still pending 1")
}

func TestVault_DeleteNeedsConfirmation(t *testing.T) {
	v := &fakeVault{items: []models.VaultItem{{ID: "1", Site: "a.com"}, {ID: "2", Site: "b.com"}}}
	m := loginRoot(t, v)

	m, cmd := press(m, "d")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Delete a.com?")

	m, _ = press(m, "n")
	assert.Len(t, v.items, 2)
	assert.False(t, vaultPage(m).confirmDelete)

	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	m = drain(t, m, cmd)

	require.Len(t, v.items, 1)
	assert.Equal(t, "2", v.items[0].ID)
	assert.Contains(t, m.View(), "item deleted")
}

func TestVault_DeleteCorrupt(t *testing.T) {
	v := &fakeVault{corrupt: []service.CorruptItem{{ID: "bad", Fields: []string{"site"}}}}
	m := loginRoot(t, v)

	m, _ = press(m, "e")
	assert.Contains(t, m.View(), "corrupt items cannot be edited")

	m, _ = press(m, "d")
	m, cmd := press(m, "y")
	m = drain(t, m, cmd)

	assert.Empty(t, v.corrupt)
	assert.NotContains(t, m.View(), "[corrupt")
}

func TestVault_Logout(t *testing.T) {
	v := &fakeVault{items: []models.VaultItem{{ID: "1", Site: "a.com"}}}
	m := loginRoot(t, v)

	m, cmd := press(m, "L")
	m = drain(t, m, cmd)

	assert.True(t, v.loggedOut)
	assert.Equal(t, pageAuth, current(m))
	assert.Empty(t, vaultPage(m).snapshot.items)
}

// ─────────────────────────────────────────────
// Form
// ─────────────────────────────────────────────

func TestForm_AddItem(t *testing.T) {
	v := &fakeVault{}
	m := loginRoot(t, v)

	m, cmd := press(m, "n")
	m = drain(t, m, cmd)
	require.Equal(t, pageForm, current(m))

	m = typeText(m, "example.com")
	m, _ = press(m, "tab")
	m = typeText(m, "alice")
	m, _ = press(m, "tab")
	m = typeText(m, "p@ss")
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, pageVault, current(m))
	require.Len(t, v.items, 1)
	assert.Equal(t, "p@ss", v.items[0].Password)
	assert.Contains(t, m.View(), "item added")
}

func TestForm_RequiresAllFields(t *testing.T) {
	m := loginRoot(t, &fakeVault{})
	m, cmd := press(m, "n")
	m = drain(t, m, cmd)

	m = typeText(m, "example.com")
	m, cmd = press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "site, username and password are required")
}

func TestForm_EditPrefillsAndSaves(t *testing.T) {
	v := &fakeVault{items: []models.VaultItem{{ID: "1", Site: "a.com", Username: "u", Password: "p"}}}
	m := loginRoot(t, v)

	m, cmd := press(m, "e")
	m = drain(t, m, cmd)
	require.Equal(t, pageForm, current(m))
	assert.Contains(t, m.View(), "EDIT PASSWORD")

	m, _ = press(m, "tab")
	m, _ = press(m, "tab")
	m = typeText(m, "2")
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, pageVault, current(m))
	assert.Equal(t, "p2", v.items[0].Password)
	assert.Contains(t, m.View(), "item saved")
}

func TestForm_SaveErrorStays(t *testing.T) {
	v := &fakeVault{saveErr: service.ErrItemNotFound, items: []models.VaultItem{{ID: "1", Site: "a.com", Username: "u", Password: "p"}}}
	m := loginRoot(t, v)

	m, cmd := press(m, "e")
	m = drain(t, m, cmd)
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, pageForm, current(m))
	assert.Contains(t, m.View(), "item no longer exists")
}

// ─────────────────────────────────────────────
// Change password
// ─────────────────────────────────────────────

func openPasswd(t *testing.T, v *fakeVault) tea.Model {
	t.Helper()

	m := loginRoot(t, v)
	m, cmd := press(m, "P")
	m = drain(t, m, cmd)
	require.Equal(t, pagePasswd, current(m))
	return m
}

func fillPasswd(m tea.Model, oldPassword, newPassword, repeat string) tea.Model {
	m = typeText(m, oldPassword)
	m, _ = press(m, "tab")
	m = typeText(m, newPassword)
	m, _ = press(m, "tab")
	return typeText(m, repeat)
}

func TestPasswd_Success(t *testing.T) {
	v := &fakeVault{password: "old"}
	m := openPasswd(t, v)

	m = fillPasswd(m, "old", "new", "new")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, "new", v.password)
	assert.Equal(t, pageVault, current(m))
	assert.Contains(t, m.View(), "master password changed")
}

func TestPasswd_Mismatch(t *testing.T) {
	m := openPasswd(t, &fakeVault{})

	m = fillPasswd(m, "old", "new", "neu")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "new passwords do not match")
}

func TestPasswd_PartialFailureReport(t *testing.T) {
	v := &fakeVault{changeErr: &service.PasswordChangeError{
		Completed: 1, Total: 3, FailedItemID: "item-2", Err: errors.New("write failed"),
	}}
	m := openPasswd(t, v)

	m = fillPasswd(m, "old", "new", "new")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	assert.Equal(t, pagePasswd, current(m))
	view := m.View()
	assert.Contains(t, view, "Re-encrypted: 1 of 3")
	assert.Contains(t, view, "item-2")
	assert.Contains(t, view, "Retry")
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdef", 2))
	assert.Equal(t, "пр...", fitText("привет мир", 5))
}

func TestHumanizeError_Network(t *testing.T) {
	assert.Equal(t, "network is down or the server is unavailable",
		humanizeError(errors.New("dial tcp 127.0.0.1:8080: connection refused")))
	assert.Empty(t, humanizeError(nil))
}
