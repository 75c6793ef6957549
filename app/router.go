package app

import (
	"context"
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
)

// isPath is the format of action targets: the extension name and the action
// name separated by a slash.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Handler applies a single kind of action.
type Handler interface {
	Apply(ctx context.Context, payload []byte) (multisig.Effect, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, payload []byte) (multisig.Effect, error)

// Apply calls f.
func (f HandlerFunc) Apply(ctx context.Context, payload []byte) (multisig.Effect, error) {
	return f(ctx, payload)
}

// Router maps action targets to handlers. All handlers must be registered
// before the router is used to apply actions.
type Router struct {
	routes map[string]Handler
}

var _ multisig.Executor = (*Router)(nil)

// NewRouter returns a router without routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Handle registers a handler for given path. It panics if the path is not
// valid or a handler for it is already registered, as routes are declared
// during startup.
func (r *Router) Handle(path string, h Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid route %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for path, or nil.
func (r *Router) Handler(path string) Handler {
	return r.routes[path]
}

// Paths returns the number of registered routes.
func (r *Router) Paths() int {
	return len(r.routes)
}

// Apply routes the action to the handler registered for its target.
// ErrNotFound is returned for an unknown target.
func (r *Router) Apply(ctx context.Context, target string, payload []byte) (multisig.Effect, error) {
	h, ok := r.routes[target]
	if !ok {
		return multisig.Effect{}, errors.Wrapf(errors.ErrNotFound, "no route for %q", target)
	}
	ctx = quorum.WithLogInfo(ctx, "path", target)
	return h.Apply(ctx, payload)
}
