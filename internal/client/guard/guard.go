// Package guard gates protected screens on the session state.
package guard

import (
	"sync"

	"github.com/dmitrijs2005/ciphersafe/internal/client/session"
	"github.com/dmitrijs2005/ciphersafe/internal/client/ui"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
)

// Status is the guard's view of the session.
type Status int

const (
	// StatusUndetermined holds until the stored session has been loaded.
	StatusUndetermined Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "undetermined"
	}
}

const (
	msgLoggedOut      = "Logged out"
	msgSessionExpired = "Session expired. Please log in again."
	labelChecking     = "Checking session..."
)

// Guard redirects to the login screen whenever a protected screen is active
// without a credential.
type Guard struct {
	store     *session.Store
	nav       ui.Navigator
	notifier  ui.Notifier
	indicator ui.Indicator

	mu       sync.Mutex
	hydrated bool
	active   bool
	cancel   func()
	last     Status
}

func New(store *session.Store, nav ui.Navigator, notifier ui.Notifier, indicator ui.Indicator) *Guard {
	return &Guard{store: store, nav: nav, notifier: notifier, indicator: indicator}
}

// Status reports the current session state.
func (g *Guard) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

func (g *Guard) statusLocked() Status {
	if !g.hydrated {
		return StatusUndetermined
	}
	if g.store.Authenticated() {
		return StatusAuthenticated
	}
	return StatusUnauthenticated
}

// MarkHydrated ends the undetermined phase.
func (g *Guard) MarkHydrated() {
	g.mu.Lock()
	g.hydrated = true
	g.mu.Unlock()
	g.evaluate(false)
}

// Activate enters a protected screen: it checks the session now and again on
// every store change until Deactivate or Logout.
func (g *Guard) Activate() Status {
	g.mu.Lock()
	if !g.active {
		g.active = true
		g.cancel = g.store.Subscribe(func(string) { g.evaluate(true) })
	}
	g.mu.Unlock()
	return g.evaluate(false)
}

// Deactivate leaves the protected screen.
func (g *Guard) Deactivate() {
	g.mu.Lock()
	cancel := g.cancel
	g.cancel = nil
	g.active = false
	g.last = StatusUndetermined
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	g.indicator.Stop()
}

// Logout ends the session on the user's request.
func (g *Guard) Logout() {
	g.Deactivate()
	g.store.Clear()
	g.notifier.Success(msgLoggedOut)
	g.nav.Navigate(common.LoginPath)
}

// evaluate applies the current status. fromStore marks a change observed
// while the screen was showing, which is announced as an expired session.
func (g *Guard) evaluate(fromStore bool) Status {
	g.mu.Lock()
	if !g.active {
		st := g.statusLocked()
		g.mu.Unlock()
		return st
	}
	st := g.statusLocked()
	prev := g.last
	g.last = st
	g.mu.Unlock()

	switch st {
	case StatusUndetermined:
		g.indicator.Start(labelChecking)
	case StatusAuthenticated:
		g.indicator.Stop()
	case StatusUnauthenticated:
		g.indicator.Stop()
		if fromStore && prev == StatusAuthenticated {
			g.notifier.Error(msgSessionExpired)
		}
		if prev != StatusUnauthenticated {
			g.nav.Navigate(common.LoginPath)
		}
	}
	return st
}
