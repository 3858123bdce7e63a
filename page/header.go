package page

import "github.com/lattice-db/bptree/guard"

// The header page is the one page-per-tree bootstrap record: just a root
// page id at a well-known offset (§3, §6.3), read and written through
// RootPageID/SetRootPageID. The header page never holds node slots.
const HeaderRootOffset = 0

// HeaderSize is the minimum backing-byte length a header page guard must
// expose.
const HeaderSize = idSize

// RootPageID reads the header page's root pointer.
func RootPageID(data []byte) guard.PageID {
	return guard.PageID(getPageID(data, HeaderRootOffset))
}

// SetRootPageID writes the header page's root pointer in place.
func SetRootPageID(data []byte, id guard.PageID) {
	putPageID(data, HeaderRootOffset, int64(id))
}
