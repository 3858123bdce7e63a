// Package guard defines the contract the tree expects from an external
// buffer pool. Nothing in this package manages a page's bytes, pins a frame,
// or schedules eviction — the buffer pool manager, the replacer policy, and
// the disk manager behind it are deliberately out of this module's scope.
// This package only states the shape of the capability the tree borrows:
// a scoped, latched view of one page.
package guard

// PageID is an opaque handle into the buffer pool's page space.
type PageID int64

// Invalid denotes "no page" — an empty tree's header root pointer, the
// rightmost leaf's next pointer, and similar absent-page markers.
const Invalid PageID = -1

// Guard is the capability every acquired page handle shares: know which
// page it names, see its bytes, and release the latch/pin pair on Release.
// Release must be safe to call exactly once and must be called on every
// exit path of the function that acquired the guard — panic, early return,
// or normal completion alike.
type Guard interface {
	PageID() PageID
	Bytes() []byte
	Release()
}

// ReadGuard is a shared-latched page. Concurrent ReadGuards over the same
// page may coexist; a ReadGuard excludes any WriteGuard over that page.
type ReadGuard interface {
	Guard
	isRead()
}

// WriteGuard is an exclusive-latched page. Mutations through Bytes() are
// visible to the buffer pool's dirty tracking once Release runs.
type WriteGuard interface {
	Guard
	isWrite()
}

// BasicGuard is pin-only: no latch is held. The tree's core algorithms never
// hand these out to callers; BufferPool.NewPage returns one so the caller can
// finish initializing a freshly allocated page's bytes before any other
// latch mode is meaningful, then Upgrade it.
type BasicGuard interface {
	Guard
}

// BufferPool is the external collaborator. An implementation pins pages,
// manages a replacer policy, and talks to a disk manager — none of which
// this module defines or depends on beyond this interface.
type BufferPool interface {
	// FetchRead pins pageID and acquires a shared latch on it.
	FetchRead(pageID PageID) (ReadGuard, error)
	// FetchWrite pins pageID and acquires an exclusive latch on it.
	FetchWrite(pageID PageID) (WriteGuard, error)
	// NewPage allocates a fresh page, pinned but unlatched.
	NewPage() (BasicGuard, error)
	// UpgradeWrite converts a BasicGuard (held only by the allocator that
	// just created it) into an exclusive WriteGuard over the same page.
	UpgradeWrite(BasicGuard) (WriteGuard, error)
	// DeletePage returns a page to the pool's free list. Called only once
	// nothing else can still be holding a guard over it.
	DeletePage(pageID PageID) error
}
