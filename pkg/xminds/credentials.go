package xminds

import "sync"

// credentials holds the bearer token and the long-lived refresh token of one
// client. Both are replaced together by set; readers never observe a pair
// that mixes an old token with a new one.
type credentials struct {
	mu           sync.RWMutex
	bearerToken  string
	refreshToken string
}

func newCredentials(refreshToken string) *credentials {
	return &credentials{refreshToken: refreshToken}
}

func (c *credentials) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearerToken
}

func (c *credentials) refresh() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

// snapshot returns both tokens under one read lock.
func (c *credentials) snapshot() (bearer, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearerToken, c.refreshToken
}

// set is only called with a successful login response.
func (c *credentials) set(bearer, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearerToken = bearer
	c.refreshToken = refresh
}
