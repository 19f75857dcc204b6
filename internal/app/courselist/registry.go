package courselist

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry hands out per-admin controllers so concurrent sessions
// never share table state. Each session stores its key (NewKey) in the
// session cookie and gets the same controller back on every request.
type Registry struct {
	api CatalogAPI
	log *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewRegistry returns a registry that builds controllers against the
// given backend client.
func NewRegistry(apiClient CatalogAPI, logger *zap.Logger) *Registry {
	return &Registry{
		api:         apiClient,
		log:         logger,
		controllers: make(map[string]*Controller),
	}
}

// NewKey mints a fresh session view-state key.
func NewKey() string { return uuid.NewString() }

// For returns the controller for a session key, creating it on first
// use.
func (r *Registry) For(key string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[key]
	if !ok {
		c = New(r.api, r.log)
		r.controllers[key] = c
	}
	return c
}

// Drop forgets a session's controller, releasing its view state.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, key)
}
