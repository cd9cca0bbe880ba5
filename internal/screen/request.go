package screen

import (
	"context"

	"github.com/google/uuid"
)

// Request tracks the single background call a screen may have in flight.
// Results are matched by ID so a reply meant for another request, or for
// another screen, is dropped.
type Request struct {
	id     string
	cancel context.CancelFunc
}

// Start cancels any pending call and returns the context and ID for a new
// one.
func (r *Request) Start() (context.Context, string) {
	r.Cancel()
	ctx, cancel := context.WithCancel(context.Background())
	r.id = uuid.NewString()
	r.cancel = cancel
	return ctx, r.id
}

// Finish reports whether id is the pending call and, if so, clears it.
func (r *Request) Finish(id string) bool {
	if r.id == "" || id != r.id {
		return false
	}
	r.cancel()
	r.id, r.cancel = "", nil
	return true
}

// Pending reports whether a call is in flight.
func (r *Request) Pending() bool {
	return r.id != ""
}

// Cancel aborts the pending call, if any.
func (r *Request) Cancel() {
	if r.cancel != nil {
		r.cancel()
	}
	r.id, r.cancel = "", nil
}
