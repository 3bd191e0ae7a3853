// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"sync"
)

// AuthState holds the bearer token for an API session. Callers that need
// the token block on an explicit ready signal instead of polling: the
// signal fires once, when the first token arrives.
type AuthState struct {
	mu    sync.RWMutex
	token string

	once  sync.Once
	ready chan struct{}
}

func NewAuthState() *AuthState {
	return &AuthState{ready: make(chan struct{})}
}

// SetToken stores a fresh token and, on first call, releases everyone
// waiting in Token.
func (a *AuthState) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
	a.once.Do(func() { close(a.ready) })
}

// Ready returns a channel closed once a token has been set.
func (a *AuthState) Ready() <-chan struct{} {
	return a.ready
}

// Token blocks until a token is available or the context ends.
func (a *AuthState) Token(ctx context.Context) (string, error) {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token, nil
}
