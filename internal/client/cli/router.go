package cli

import "sync"

// Router tracks the active screen of the interactive shell. It implements
// ui.Navigator; the shell applies a change on its next prompt.
type Router struct {
	mu      sync.Mutex
	current string
}

func NewRouter(initial string) *Router {
	return &Router{current: initial}
}

func (r *Router) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = path
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
