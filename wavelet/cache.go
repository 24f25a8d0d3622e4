// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import "sync"

// pairCache is a read-through cache of filter banks keyed by name.
// Entries are built once, never invalidated, and handed out as copies.
// Failed builds are not cached.
type pairCache struct {
	mu    sync.RWMutex
	pairs map[string]Pair
}

func newPairCache() *pairCache {
	return &pairCache{pairs: make(map[string]Pair)}
}

func (c *pairCache) get(name string, build func(name string) (Pair, error)) (Pair, error) {
	c.mu.RLock()
	p, ok := c.pairs[name]
	c.mu.RUnlock()
	if ok {
		return p.Clone(), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pairs[name]; ok {
		return p.Clone(), nil
	}
	p, err := build(name)
	if err != nil {
		return Pair{}, err
	}
	c.pairs[name] = p
	return p.Clone(), nil
}

// each stage has its own cache so that building one kind may look up another
var (
	discreteCache   = newPairCache()
	firstStageCache = newPairCache()
	dualTreeCache   = newPairCache()
)
