//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

// Package memlock is a process-wide, in-memory lock registry over composite
// keys. It guarantees at most one in-flight mutation per logical edge:
// acquisition over a key set is all-or-nothing and never blocks, a conflict
// is reported immediately with the first conflicting key.
package memlock

import "sync"

// Registry holds the currently locked keys. The zero value is not usable;
// create one with NewRegistry and share it across all mutation processors.
type Registry struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{held: map[string]struct{}{}}
}

// Acquire atomically locks all keys. If any key is already held by another
// acquisition, nothing is locked and the first conflicting key is returned
// with a nil guard. On success the returned guard owns the keys until
// Release.
//
// Duplicate keys within one acquisition are tolerated and collapse into a
// single lock.
func (r *Registry) Acquire(keys []string) (*Guard, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deduped := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := r.held[key]; ok {
			return nil, key
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, key)
	}

	for _, key := range deduped {
		r.held[key] = struct{}{}
	}

	return &Guard{reg: r, keys: deduped}, ""
}

func (r *Registry) release(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.held, key)
	}
}

// Held reports whether the key is currently locked.
func (r *Registry) Held(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.held[key]
	return ok
}

// Guard owns a set of acquired keys. Ownership may transfer into an async
// completion; Release drops the keys exactly once no matter how often it is
// called.
type Guard struct {
	reg  *Registry
	keys []string
	once sync.Once
}

func (g *Guard) Release() {
	g.once.Do(func() {
		g.reg.release(g.keys)
	})
}
