// Package workspace assembles the per-profile application state: the doubt
// list, the active session and the theme flag.
package workspace

import (
	"context"
	"errors"
	"time"

	"doubtsolver/internal/accounts"
	"doubtsolver/internal/doubts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/models"
)

// ErrConfirmationRequired is returned by destructive bulk operations that
// were not confirmed. State is left untouched.
var ErrConfirmationRequired = errors.New("workspace: confirmation required")

// Options controls how a Workspace is assembled.
type Options struct {
	// Accounts builds the credential table for the profile store. Nil selects
	// the plaintext table.
	Accounts func(store.Store) accounts.AccountStore
	// Now overrides the clock used for doubt ids.
	Now func() time.Time
}

// Workspace is the state of one browser profile, rehydrated once from the
// store and written through on every mutation.
type Workspace struct {
	store    store.Store
	Doubts   *doubts.Repository
	Sessions *accounts.Manager
	darkMode bool
}

// Open rehydrates a workspace from s.
func Open(ctx context.Context, s store.Store, opts Options) *Workspace {
	if s == nil {
		s = store.Unavailable{}
	}
	var accountStore accounts.AccountStore
	if opts.Accounts != nil {
		accountStore = opts.Accounts(s)
	}
	var repoOpts []doubts.Option
	if opts.Now != nil {
		repoOpts = append(repoOpts, doubts.WithClock(opts.Now))
	}

	w := &Workspace{
		store:    s,
		Doubts:   doubts.Open(ctx, s, repoOpts...),
		Sessions: accounts.NewManager(ctx, s, accountStore),
		darkMode: models.DefaultDarkMode,
	}
	var dark bool
	if store.Restore(ctx, s, store.KeyDarkMode, &dark) {
		w.darkMode = dark
	}
	return w
}

// DarkMode reports the theme flag.
func (w *Workspace) DarkMode() bool {
	return w.darkMode
}

// ToggleTheme flips the theme flag, persists it and returns the new value.
func (w *Workspace) ToggleTheme(ctx context.Context) bool {
	w.darkMode = !w.darkMode
	store.Persist(ctx, w.store, store.KeyDarkMode, w.darkMode)
	applog.Debug(ctx, "theme toggled", "dark", w.darkMode)
	return w.darkMode
}

// SetDarkMode stores an explicit theme flag.
func (w *Workspace) SetDarkMode(ctx context.Context, dark bool) {
	w.darkMode = dark
	store.Persist(ctx, w.store, store.KeyDarkMode, w.darkMode)
	applog.Debug(ctx, "theme set", "dark", w.darkMode)
}

// ClearResolved removes every resolved doubt once confirmed.
func (w *Workspace) ClearResolved(ctx context.Context, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	return w.Doubts.ClearResolved(ctx), nil
}

// ClearUnresolved removes every unresolved doubt once confirmed.
func (w *Workspace) ClearUnresolved(ctx context.Context, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	return w.Doubts.ClearUnresolved(ctx), nil
}

// ResetAll restores the factory state: sample doubts, no active user, the
// built-in credential table and the default theme.
func (w *Workspace) ResetAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	w.Doubts.Reset(ctx)
	w.Sessions.Reset(ctx)
	w.darkMode = models.DefaultDarkMode
	store.Forget(ctx, w.store, store.KeyDarkMode)
	applog.Info(ctx, "workspace reset to defaults")
	return nil
}
