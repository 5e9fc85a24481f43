package table

import "vqlite/pager"

// Row layout: id (u32) | username (32 bytes, zero-padded) | email (255 bytes, zero-padded).
const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize // 291
)

// Common node header: node type (1) | is-root (1) | parent page (4).
const (
	NodeTypeSize   = 1
	NodeTypeOffset = 0

	IsRootSize   = 1
	IsRootOffset = NodeTypeOffset + NodeTypeSize

	ParentPointerSize   = 4
	ParentPointerOffset = IsRootOffset + IsRootSize

	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize // 6
)

// Leaf node header, immediately after the common header:
// num-cells (4) | next-leaf (4).
const (
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize

	LeafNodeNextLeafSize   = 4
	LeafNodeNextLeafOffset = LeafNodeNumCellsOffset + LeafNodeNumCellsSize

	LeafNodeHeaderSize = LeafNodeNextLeafOffset + LeafNodeNextLeafSize // 14
)

// Leaf node body: an array of (key, row) cells.
const (
	LeafNodeKeySize   = 4
	LeafNodeKeyOffset = 0

	LeafNodeValueSize   = RowSize
	LeafNodeValueOffset = LeafNodeKeyOffset + LeafNodeKeySize

	LeafNodeCellSize = LeafNodeKeySize + LeafNodeValueSize // 295

	LeafNodeSpaceForCells = pager.PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize

	// LeafNodeLeftSplitCount and LeafNodeRightSplitCount partition the
	// LeafNodeMaxCells+1 cells (existing cells plus the one being
	// inserted) produced by a leaf split. Left gets the larger half
	// when the total is odd.
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1) - LeafNodeRightSplitCount
)

// Internal node header, immediately after the common header:
// num-keys (4) | right-child page (4).
const (
	InternalNodeNumKeysSize   = 4
	InternalNodeNumKeysOffset = CommonNodeHeaderSize

	InternalNodeRightChildSize   = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize

	InternalNodeHeaderSize = InternalNodeRightChildOffset + InternalNodeRightChildSize // 14
)

// Internal node body: an array of (child page, key) cells.
const (
	InternalNodeChildSize = 4
	InternalNodeKeySize   = 4
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize // 8

	// InternalNodeMaxCells is kept small so that split/propagation
	// logic is exercised on modest key counts, matching the reference
	// teaching implementation this engine follows. A production sizing
	// would derive it from pager.PageSize the way LeafNodeMaxCells is
	// derived above.
	InternalNodeMaxCells = 3
)

// InvalidPage is the sentinel used for an internal node's right child
// before it acquires its first child.
const InvalidPage uint32 = 0xFFFFFFFF

// RootPageNum is the page number of the tree root; it never changes.
const RootPageNum uint32 = 0
