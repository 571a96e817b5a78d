package service

import (
	"sort"
	"sync"
)

// ProductLocks serializes stock work per product inside this process.
// Requests touching disjoint products never wait on each other. One instance
// is shared by every service that moves stock.
type ProductLocks struct {
	mu    sync.Mutex
	locks map[string]*productLock
}

type productLock struct {
	mu   sync.Mutex
	refs int
}

func NewProductLocks() *ProductLocks {
	return &ProductLocks{locks: make(map[string]*productLock)}
}

// Lock acquires every id in sorted order, so two requests sharing products
// cannot deadlock, and returns the matching unlock.
func (p *ProductLocks) Lock(ids []string) func() {
	keys := uniqueSorted(ids)

	held := make([]*productLock, 0, len(keys))
	for _, key := range keys {
		l := p.acquire(key)
		l.mu.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			p.release(keys[i])
		}
	}
}

func (p *ProductLocks) acquire(key string) *productLock {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[key]
	if !ok {
		l = &productLock{}
		p.locks[key] = l
	}
	l.refs++
	return l
}

func (p *ProductLocks) release(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l := p.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(p.locks, key)
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}
