// Package membuf is an in-memory reference implementation of guard.BufferPool:
// every page lives in a sync.Map, latched with a plain sync.RWMutex, for use
// in tests and the demo CLI where no real disk manager is wanted.
package membuf

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lattice-db/bptree/guard"
)

// PageSize is the fixed buffer size handed out for every page, matching the
// 4KB pages used throughout the pack this module was built from.
const PageSize = 4096

type slot struct {
	latch sync.RWMutex
	data  []byte
}

// Pool is a sync.Map-backed, non-evicting guard.BufferPool: it never frees a
// frame behind the caller's back, so it never needs a replacer policy or a
// disk manager. Good enough for anything that fits in memory.
type Pool struct {
	pages  sync.Map // guard.PageID -> *slot
	nextID int64
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{}
}

func (p *Pool) allocate() *slot {
	return &slot{data: make([]byte, PageSize)}
}

// NewPage allocates a fresh, zeroed page and returns it pinned but unlatched.
func (p *Pool) NewPage() (guard.BasicGuard, error) {
	id := guard.PageID(atomic.AddInt64(&p.nextID, 1) - 1)
	s := p.allocate()
	p.pages.Store(id, s)
	return &basicGuard{id: id, s: s}, nil
}

func (p *Pool) load(pageID guard.PageID) (*slot, error) {
	v, ok := p.pages.Load(pageID)
	if !ok {
		return nil, errors.Errorf("membuf: unknown page id %d", int64(pageID))
	}
	return v.(*slot), nil
}

// FetchRead pins pageID and takes its shared latch.
func (p *Pool) FetchRead(pageID guard.PageID) (guard.ReadGuard, error) {
	s, err := p.load(pageID)
	if err != nil {
		return nil, err
	}
	s.latch.RLock()
	return &readGuard{id: pageID, s: s}, nil
}

// FetchWrite pins pageID and takes its exclusive latch.
func (p *Pool) FetchWrite(pageID guard.PageID) (guard.WriteGuard, error) {
	s, err := p.load(pageID)
	if err != nil {
		return nil, err
	}
	s.latch.Lock()
	return &writeGuard{id: pageID, s: s}, nil
}

// UpgradeWrite takes bg's page's exclusive latch. bg must be a guard this
// Pool produced via NewPage and not yet released.
func (p *Pool) UpgradeWrite(bg guard.BasicGuard) (guard.WriteGuard, error) {
	b := bg.(*basicGuard)
	b.s.latch.Lock()
	return &writeGuard{id: b.id, s: b.s}, nil
}

// DeletePage removes pageID from the pool. The caller must hold no guard
// over it when calling this.
func (p *Pool) DeletePage(pageID guard.PageID) error {
	p.pages.Delete(pageID)
	return nil
}

type basicGuard struct {
	id guard.PageID
	s  *slot
}

func (g *basicGuard) PageID() guard.PageID { return g.id }
func (g *basicGuard) Bytes() []byte        { return g.s.data }
func (g *basicGuard) Release()             {}

type readGuard struct {
	id       guard.PageID
	s        *slot
	released bool
}

func (g *readGuard) PageID() guard.PageID { return g.id }
func (g *readGuard) Bytes() []byte        { return g.s.data }
func (g *readGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.s.latch.RUnlock()
}
func (g *readGuard) isRead() {}

type writeGuard struct {
	id       guard.PageID
	s        *slot
	released bool
}

func (g *writeGuard) PageID() guard.PageID { return g.id }
func (g *writeGuard) Bytes() []byte        { return g.s.data }
func (g *writeGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.s.latch.Unlock()
}
func (g *writeGuard) isWrite() {}
