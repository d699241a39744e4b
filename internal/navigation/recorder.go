package navigation

import (
	"sync"

	"kolikctl/internal/domain"
)

// Recorder is a Navigator that remembers the last redirect and holds
// the flash message until it is taken exactly once. Flash messages
// live only in memory, so they never survive a process restart.
type Recorder struct {
	mu    sync.Mutex
	last  domain.Navigation
	flash string
	moved bool
}

// Navigate implements domain.Navigator.
func (r *Recorder) Navigate(nav domain.Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = nav
	r.moved = true
	if nav.Flash != "" {
		r.flash = nav.Flash
	}
}

// Last returns the most recent redirect, if any.
func (r *Recorder) Last() (domain.Navigation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.moved
}

// TakeFlash returns the pending flash message and discards it.
func (r *Recorder) TakeFlash() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flash == "" {
		return "", false
	}
	msg := r.flash
	r.flash = ""
	return msg, true
}
