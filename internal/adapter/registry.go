package adapter

import (
	"net/url"
	"sync"

	"github.com/bornholm/worklog/internal/core/port"
	"github.com/pkg/errors"
)

// TaskStore holds the available task store backends, selected by the
// scheme of the configured URI (e.g. "sqlite://data.sqlite",
// "memory://"). Backends register themselves from their init function.
var TaskStore = NewRegistry[port.TaskStore]()

type Factory[T any] func(u *url.URL) (T, error)

type Registry[T any] struct {
	mutex     sync.RWMutex
	factories map[string]Factory[T]
}

func (r *Registry[T]) Register(scheme string, factory Factory[T]) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.factories[scheme] = factory
}

func (r *Registry[T]) From(uri string) (T, error) {
	var empty T

	u, err := url.Parse(uri)
	if err != nil {
		return empty, errors.WithStack(err)
	}

	r.mutex.RLock()
	factory, exists := r.factories[u.Scheme]
	r.mutex.RUnlock()

	if !exists {
		return empty, errors.Errorf("no factory registered for scheme '%s'", u.Scheme)
	}

	value, err := factory(u)
	if err != nil {
		return empty, errors.WithStack(err)
	}

	return value, nil
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		factories: map[string]Factory[T]{},
	}
}
