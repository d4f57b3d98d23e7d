// Package webhook receives messaging-platform callbacks. Providers are
// registered by name in an explicit registry resolved at startup, so adding
// a platform is a new Provider implementation plus one registry entry.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrUnknownProvider no provider is registered under the name.
	ErrUnknownProvider = errors.New("webhook: unknown provider")
	// ErrVerificationFailed the platform's subscription handshake failed.
	ErrVerificationFailed = errors.New("webhook: verification failed")
)

// Provider one messaging platform's webhook contract.
type Provider interface {
	// Name the registry key, also the URL path segment.
	Name() string
	// Verify answers the platform's subscription handshake and returns the
	// challenge to echo back.
	Verify(params url.Values) (string, error)
	// HandleMessage processes one inbound callback payload.
	HandleMessage(ctx context.Context, payload []byte) error
}

// Registry name → provider lookup, built once at startup.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry over the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Resolve returns the provider registered under name.
func (r *Registry) Resolve(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
