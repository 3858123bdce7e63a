package bptree

import "github.com/lattice-db/bptree/guard"

// ancestorFrame is one latched internal (or, at the bottom, leaf) node
// retained on a write descent. idxInParent is the slot in the PARENT frame
// that points at this page — -1 for the root frame, which has no parent on
// the path. Remove's borrow/merge step needs this to find the node's
// left/right sibling through the parent without re-searching for it.
type ancestorFrame struct {
	pageID      guard.PageID
	g           guard.WriteGuard
	idxInParent int
}

// ancestorPath is the per-operation holder of §4.3: an ordered collection of
// latched ancestor guards, oldest (closest to the header) first. Popping
// from the front releases safe ancestors as the descent proves they cannot
// be affected by a structural modification; popping from the back processes
// a split/merge cascade bottom-up. Both directions are needed, so this is a
// deque — here, a plain slice used as one.
type ancestorPath struct {
	frames []ancestorFrame
}

func (p *ancestorPath) push(pageID guard.PageID, g guard.WriteGuard, idxInParent int) {
	p.frames = append(p.frames, ancestorFrame{pageID: pageID, g: g, idxInParent: idxInParent})
}

// releaseAllButTop releases every retained ancestor except the most
// recently pushed one, used the instant a descent proves the freshly
// latched node is safe: anything above it can no longer be touched by this
// operation.
func (p *ancestorPath) releaseAllButTop() {
	if len(p.frames) <= 1 {
		return
	}
	for _, f := range p.frames[:len(p.frames)-1] {
		f.g.Release()
	}
	top := p.frames[len(p.frames)-1]
	top.idxInParent = -1 // its former parent is gone; it is the new topmost retained frame
	p.frames = []ancestorFrame{top}
}

// releaseAll releases every retained ancestor.
func (p *ancestorPath) releaseAll() {
	for _, f := range p.frames {
		f.g.Release()
	}
	p.frames = nil
}

// popBack pops and returns the most recently pushed (deepest) ancestor,
// without releasing its guard — the split/merge cascade takes ownership of
// it next.
func (p *ancestorPath) popBack() (ancestorFrame, bool) {
	if len(p.frames) == 0 {
		return ancestorFrame{}, false
	}
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return f, true
}

// top returns a pointer to the most recently pushed ancestor, for in-place
// mutation (e.g. rewriting a separator key during borrow) without an
// intervening pop/push.
func (p *ancestorPath) top() *ancestorFrame {
	if len(p.frames) == 0 {
		return nil
	}
	return &p.frames[len(p.frames)-1]
}

// empty reports whether any ancestor guards remain held.
func (p *ancestorPath) empty() bool { return len(p.frames) == 0 }
