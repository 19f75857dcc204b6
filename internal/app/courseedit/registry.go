package courseedit

import (
	"sync"

	"go.uber.org/zap"
)

// Registry hands out per-admin editor controllers keyed by the
// session's view key, so two admins editing at once never share staged
// images or form state.
type Registry struct {
	api EditAPI
	log *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewRegistry returns a registry that builds controllers against the
// given backend client.
func NewRegistry(apiClient EditAPI, logger *zap.Logger) *Registry {
	return &Registry{
		api:         apiClient,
		log:         logger,
		controllers: make(map[string]*Controller),
	}
}

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

// Drop forgets a session's controller.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, key)
}
