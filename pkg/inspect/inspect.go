// Package inspect exposes registered properties over HTTP for debugging.
//
// A Registry maps names to readable properties; Handler serves their
// current values as JSON alongside a Prometheus metrics endpoint:
//
//	GET /props          all registered properties
//	GET /props/{name}   one property
//	GET /metrics        Prometheus exposition
package inspect

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propcell-dev/propcell/pkg/propcell"
)

// Registry holds named snapshot functions for registered properties.
type Registry struct {
	mu    sync.RWMutex
	props map[string]func() any

	gatherer prometheus.Gatherer
}

// Option configures a Registry.
type Option func(*Registry)

// WithGatherer sets the Prometheus gatherer served at /metrics.
// Default: prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(r *Registry) {
		r.gatherer = g
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		props:    make(map[string]func() any),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register exposes src's current value under name. Registering the same
// name again replaces the previous entry. Reads happen lazily at request
// time, so a disposed property keeps serving its frozen value.
func Register[T any](r *Registry, name string, src propcell.Readable[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[name] = func() any { return src.Read() }
}

// Unregister removes name. Unknown names are no-ops.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.props))
	for name := range r.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// snapshot reads every registered property.
func (r *Registry) snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.props))
	for name, read := range r.props {
		out[name] = read()
	}
	return out
}

// read returns one property's value.
func (r *Registry) read(name string) (any, bool) {
	r.mu.RLock()
	fn, ok := r.props[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Handler returns the debug router.
func (r *Registry) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Get("/props", r.handleList)
	mux.Get("/props/{name}", r.handleGet)
	mux.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (r *Registry) handleList(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, r.snapshot())
}

func (r *Registry) handleGet(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	value, ok := r.read(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown property: " + name})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "value": value})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
