package service

import (
	"maps"
	"sync"
)

// Attributes is a free-form key/value store persisted with the wallet state.
type Attributes struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

func (a *Attributes) Set(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[key] = value
}

func (a *Attributes) Get(key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[key]
	return v, ok
}

func (a *Attributes) snapshot() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.values)
}

func (a *Attributes) restore(values map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = maps.Clone(values)
	if a.values == nil {
		a.values = make(map[string]string)
	}
}
