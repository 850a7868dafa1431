//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"sync"
)

// CachedPrintable keeps up to cacheDepth recently generated layers. It is
// safe for concurrent use.
type CachedPrintable struct {
	Printable

	mu         sync.Mutex
	cacheDepth int
	layerCache map[int]Layer
}

func NewCachedPrintable(printable Printable, cacheDepth int) (cp *CachedPrintable) {
	cp = &CachedPrintable{
		Printable:  printable,
		layerCache: make(map[int]Layer, cacheDepth),
		cacheDepth: cacheDepth,
	}
	return
}

func (cp *CachedPrintable) Layer(index int) (layer Layer) {
	cp.mu.Lock()
	layer, found := cp.layerCache[index]
	cp.mu.Unlock()

	if found {
		return
	}

	layer = cp.Printable.Layer(index)

	cp.mu.Lock()
	if len(cp.layerCache) >= cp.cacheDepth {
		for key := range cp.layerCache {
			delete(cp.layerCache, key)
			break
		}
	}
	if cp.cacheDepth > 0 {
		cp.layerCache[index] = layer
	}
	cp.mu.Unlock()

	return
}
