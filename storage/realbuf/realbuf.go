// Package realbuf adapts github.com/ryogrid/SamehadaDB/lib's buffer pool
// manager to guard.BufferPool, the same way storage/buffer/parent_bufmgr_impl.go
// and storage/page/parent_page_impl.go adapted it to the teacher's own
// ParentBufMgr/ParentPage contract: a thin wrapper embedding the upstream
// manager and translating its pin-only FetchPage/NewPage/UnpinPage/
// DeallocatePage calls to this module's page-id type.
//
// SamehadaDB's manager is pin-only; it carries no read/write latch mode of
// its own (pins a frame, nothing more). The teacher's own bufmgr.go faces
// the same gap and closes it with its own hashTable of per-page latches
// layered on top of the raw page source — this adapter does the same with
// a plain sync.RWMutex per page id.
package realbuf

import (
	"sync"

	"github.com/pkg/errors"
	sdbbuffer "github.com/ryogrid/SamehadaDB/lib/storage/buffer"
	sdbtypes "github.com/ryogrid/SamehadaDB/lib/types"

	"github.com/lattice-db/bptree/guard"
)

// Pool adapts a *sdbbuffer.BufferPoolManager to guard.BufferPool.
type Pool struct {
	bpm *sdbbuffer.BufferPoolManager

	mu      sync.Mutex
	latches map[guard.PageID]*sync.RWMutex
}

// New wraps an already-constructed SamehadaDB buffer pool manager. Building
// that manager (disk manager, replacer, frame count) is the caller's
// responsibility, same as the teacher leaves BufferPoolManager construction
// to its own caller.
func New(bpm *sdbbuffer.BufferPoolManager) *Pool {
	return &Pool{bpm: bpm, latches: make(map[guard.PageID]*sync.RWMutex)}
}

func (p *Pool) latchFor(pageID guard.PageID) *sync.RWMutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.latches[pageID]
	if !ok {
		l = &sync.RWMutex{}
		p.latches[pageID] = l
	}
	return l
}

func (p *Pool) FetchRead(pageID guard.PageID) (guard.ReadGuard, error) {
	pg := p.bpm.FetchPage(sdbtypes.PageID(int32(pageID)))
	if pg == nil {
		return nil, errors.Errorf("realbuf: fetch page %d failed", int64(pageID))
	}
	l := p.latchFor(pageID)
	l.RLock()
	return &readGuard{pool: p, id: pageID, page: pg, latch: l}, nil
}

func (p *Pool) FetchWrite(pageID guard.PageID) (guard.WriteGuard, error) {
	pg := p.bpm.FetchPage(sdbtypes.PageID(int32(pageID)))
	if pg == nil {
		return nil, errors.Errorf("realbuf: fetch page %d failed", int64(pageID))
	}
	l := p.latchFor(pageID)
	l.Lock()
	return &writeGuard{pool: p, id: pageID, page: pg, latch: l}, nil
}

func (p *Pool) NewPage() (guard.BasicGuard, error) {
	pg := p.bpm.NewPage()
	if pg == nil {
		return nil, errors.New("realbuf: buffer pool exhausted")
	}
	id := guard.PageID(int64(pg.GetPageId()))
	return &basicGuard{pool: p, id: id, page: pg}, nil
}

func (p *Pool) UpgradeWrite(bg guard.BasicGuard) (guard.WriteGuard, error) {
	b := bg.(*basicGuard)
	l := p.latchFor(b.id)
	l.Lock()
	return &writeGuard{pool: b.pool, id: b.id, page: b.page, latch: l}, nil
}

func (p *Pool) DeletePage(pageID guard.PageID) error {
	if err := p.bpm.DeallocatePage(sdbtypes.PageID(int32(pageID)), false); err != nil {
		return errors.Wrapf(err, "realbuf: deallocate page %d", int64(pageID))
	}
	p.mu.Lock()
	delete(p.latches, pageID)
	p.mu.Unlock()
	return nil
}

type basicGuard struct {
	pool *Pool
	id   guard.PageID
	page *sdbbuffer.Page
}

func (g *basicGuard) PageID() guard.PageID { return g.id }
func (g *basicGuard) Bytes() []byte        { return g.page.Data()[:] }
func (g *basicGuard) Release() {
	g.pool.bpm.UnpinPage(sdbtypes.PageID(int32(g.id)), false)
}

type readGuard struct {
	pool     *Pool
	id       guard.PageID
	page     *sdbbuffer.Page
	latch    *sync.RWMutex
	released bool
}

func (g *readGuard) PageID() guard.PageID { return g.id }
func (g *readGuard) Bytes() []byte        { return g.page.Data()[:] }
func (g *readGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.latch.RUnlock()
	g.pool.bpm.UnpinPage(sdbtypes.PageID(int32(g.id)), false)
}
func (g *readGuard) isRead() {}

type writeGuard struct {
	pool     *Pool
	id       guard.PageID
	page     *sdbbuffer.Page
	latch    *sync.RWMutex
	released bool
}

func (g *writeGuard) PageID() guard.PageID { return g.id }
func (g *writeGuard) Bytes() []byte        { return g.page.Data()[:] }
func (g *writeGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.latch.Unlock()
	g.pool.bpm.UnpinPage(sdbtypes.PageID(int32(g.id)), true)
}
func (g *writeGuard) isWrite() {}
