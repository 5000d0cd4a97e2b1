package handlers

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"doubtsolver/internal/accounts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/internal/workspace"
)

const (
	sessionProfileKey      = "profile:id"
	sessionLoginMessageKey = "auth:message"
	sessionFlashKey        = "app:flash"
)

const (
	loginRequiredMessage = "Please log in to continue."
	loggedOutMessage     = "You have been logged out."
	resetMessage         = "All data has been cleared."
)

// Options tunes the HTTP handlers.
type Options struct {
	// HashedAccounts selects the bcrypt credential table.
	HashedAccounts bool
	BcryptCost     int
	// LegacyHTMLPath is the file served verbatim at /original.
	LegacyHTMLPath string
	// DemoProfile, when set, is assigned to browsers without a profile.
	DemoProfile string
	Now         func() time.Time
}

var (
	sessionManager *scs.SessionManager
	dataStore      store.Store
	options        Options
	// profileLocks serialises requests per profile. Profiles share a stripe
	// by hash so the set stays fixed no matter how many browsers visit.
	profileLocks [64]sync.Mutex
)

var errWorkspaceUnavailable = errors.New("workspace not available")

type workspaceContextKey struct{}

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, s store.Store, opts Options) {
	sessionManager = sm
	dataStore = s
	options = opts
}

// profileID returns the browser profile bound to the session. A session
// without one gets the demo profile or a fresh id; the id is only written to
// the session when bind is set, so read-only visits leave no session behind.
func profileID(r *http.Request, bind bool) string {
	ctx := r.Context()
	if id := sessionManager.GetString(ctx, sessionProfileKey); id != "" {
		return id
	}
	id := options.DemoProfile
	if id == "" {
		id = uuid.NewString()
	}
	if bind {
		sessionManager.Put(ctx, sessionProfileKey, id)
		applog.Debug(ctx, "assigned browser profile", "profile", id)
	}
	return id
}

func hasProfile(r *http.Request) bool {
	return sessionManager.GetString(r.Context(), sessionProfileKey) != ""
}

func profileLock(profile string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(profile))
	return &profileLocks[h.Sum32()%uint32(len(profileLocks))]
}

func accountsFor(s store.Store) accounts.AccountStore {
	if options.HashedAccounts {
		return accounts.NewHashed(s, options.BcryptCost)
	}
	return accounts.NewPlaintext(s)
}

// openWorkspace rehydrates the profile state and holds the profile lock until
// the returned release func is called. bind persists the profile id in the
// session; requests that may write state must set it.
func openWorkspace(r *http.Request, bind bool) (*workspace.Workspace, func(), error) {
	if sessionManager == nil || dataStore == nil {
		return nil, func() {}, errWorkspaceUnavailable
	}
	profile := profileID(r, bind)
	mu := profileLock(profile)
	mu.Lock()
	ws := workspace.Open(r.Context(), store.Scope(dataStore, profile), workspace.Options{
		Accounts: accountsFor,
		Now:      options.Now,
	})
	return ws, mu.Unlock, nil
}

func workspaceFrom(r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := r.Context().Value(workspaceContextKey{}).(*workspace.Workspace)
	return ws, ok && ws != nil
}

func requireWorkspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := workspaceFrom(r)
	if !ok {
		http.Error(w, errWorkspaceUnavailable.Error(), http.StatusServiceUnavailable)
	}
	return ws, ok
}

// RequireAuthentication ensures the profile has an active user before accessing the resource.
// The rehydrated workspace is handed to next through the request context.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, release, err := openWorkspace(r, false)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		defer release()
		if _, ok := ws.Sessions.Current(); !ok {
			applog.Debug(r.Context(), "no active user, redirecting to login", "path", r.URL.Path)
			putLoginMessage(r, loginRequiredMessage)
			redirectToLogin(w, r)
			return
		}
		// An active user on an unbound session can only come from the demo profile.
		profileID(r, true)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), workspaceContextKey{}, ws)))
	})
}

// Logout clears the active user and redirects to the login screen. Only POST
// is accepted so that a cross-site link cannot end the session.
func Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, release, err := openWorkspace(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer release()
	if _, ok := ws.Sessions.Current(); ok {
		ws.Sessions.Logout(r.Context())
		putLoginMessage(r, loggedOutMessage)
	}

	redirectToLogin(w, r)
}

func renewSession(r *http.Request) {
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
	}
}

// putLoginMessage queues a notice for the next login page render. Sessions
// without a profile are left untouched.
func putLoginMessage(r *http.Request, message string) {
	if sessionManager != nil && hasProfile(r) {
		sessionManager.Put(r.Context(), sessionLoginMessageKey, message)
	}
}

func putFlash(r *http.Request, message string) {
	if sessionManager != nil {
		sessionManager.Put(r.Context(), sessionFlashKey, message)
	}
}

func popFlash(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}

func redirectTo(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/login")
}

func redirectToApp(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/app")
}
