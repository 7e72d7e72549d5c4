package client

import (
	"context"
	"net/http"
	"sort"
	"sync"
)

// Permissions caches the capability names the server resolved for the
// current principal. Concurrent refreshes are serialized by a
// generation counter: a refresh that finishes after a newer one began
// is discarded, so the cache only ever jumps from one fully-resolved
// set to another.
type Permissions struct {
	mu   sync.RWMutex
	gen  uint64
	caps map[string]struct{}
}

func newPermissions() *Permissions {
	return &Permissions{caps: map[string]struct{}{}}
}

// Has reports whether the capability is held. "admin" implies every
// other capability.
func (p *Permissions) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.caps["admin"]; ok {
		return true
	}
	_, ok := p.caps[name]
	return ok
}

// Names returns the cached capability names in sorted order.
func (p *Permissions) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.caps))
	for name := range p.caps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// replace swaps the whole set and advances the generation, outdating
// any refresh still in flight.
func (p *Permissions) replace(names []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.caps = make(map[string]struct{}, len(names))
	for _, name := range names {
		p.caps[name] = struct{}{}
	}
}

func (p *Permissions) reset() {
	p.replace(nil)
}

// begin marks the start of a refresh and returns its generation.
func (p *Permissions) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	return p.gen
}

// commit applies a refresh result unless a newer refresh or replace has
// happened since begin.
func (p *Permissions) commit(gen uint64, names []string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.caps = make(map[string]struct{}, len(names))
	for _, name := range names {
		p.caps[name] = struct{}{}
	}
	return true
}

// Refresh re-resolves the capability set from the server. Overlapping
// calls are safe; the one that started last wins.
func (c *Client) Refresh(ctx context.Context) error {
	gen := c.permissions.begin()

	var me mePayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil, &me); err != nil {
		return err
	}

	c.permissions.commit(gen, me.Capabilities)
	return nil
}
