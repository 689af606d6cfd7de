// Package session abstracts the session/credential store the original
// frontend kept in browser local storage. The aggregation core never reads
// it; identity always arrives as explicit parameters, and this provider only
// backs the HTTP layer.
package session

import (
	"sync"
	"time"
)

// Credentials is the identity attached to a session.
type Credentials struct {
	Email     string
	Token     string
	Admin     bool
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Provider is an injected session store.
type Provider interface {
	Get(key string) (Credentials, bool)
	Set(key string, creds Credentials)
	Clear(key string)
}

// MemoryProvider is an in-memory Provider, the only implementation this
// service needs since sessions are validated per request from the JWT.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]Credentials
}

// NewMemoryProvider creates an empty in-memory session store.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]Credentials)}
}

func (p *MemoryProvider) Get(key string) (Credentials, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	creds, ok := p.data[key]
	return creds, ok
}

func (p *MemoryProvider) Set(key string, creds Credentials) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = creds
}

func (p *MemoryProvider) Clear(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key)
}
