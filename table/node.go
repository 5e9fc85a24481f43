package table

import "encoding/binary"

// NodeType tags a page as either an internal or a leaf B+Tree node.
type NodeType uint8

const (
	NodeTypeInternal NodeType = 0
	NodeTypeLeaf     NodeType = 1
)

// The functions below treat a raw page buffer (pager.Page.Data[:]) as
// a B+Tree node. They never allocate pages or touch the pager; that
// is the job of the Table methods in btree.go.

func getNodeType(buf []byte) NodeType {
	return NodeType(buf[NodeTypeOffset])
}

func setNodeType(buf []byte, t NodeType) {
	buf[NodeTypeOffset] = byte(t)
}

func isNodeRoot(buf []byte) bool {
	return buf[IsRootOffset] != 0
}

func setNodeRoot(buf []byte, isRoot bool) {
	if isRoot {
		buf[IsRootOffset] = 1
	} else {
		buf[IsRootOffset] = 0
	}
}

func getParentPointer(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[ParentPointerOffset : ParentPointerOffset+ParentPointerSize])
}

func setParentPointer(buf []byte, page uint32) {
	binary.LittleEndian.PutUint32(buf[ParentPointerOffset:ParentPointerOffset+ParentPointerSize], page)
}

// --- Leaf node accessors ---

func leafNumCells(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[LeafNodeNumCellsOffset : LeafNodeNumCellsOffset+LeafNodeNumCellsSize])
}

func setLeafNumCells(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[LeafNodeNumCellsOffset:LeafNodeNumCellsOffset+LeafNodeNumCellsSize], n)
}

func leafNextLeaf(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[LeafNodeNextLeafOffset : LeafNodeNextLeafOffset+LeafNodeNextLeafSize])
}

func setLeafNextLeaf(buf []byte, page uint32) {
	binary.LittleEndian.PutUint32(buf[LeafNodeNextLeafOffset:LeafNodeNextLeafOffset+LeafNodeNextLeafSize], page)
}

func leafCellOffset(i uint32) int {
	return int(LeafNodeHeaderSize + i*LeafNodeCellSize)
}

// leafCell returns the raw (key || row) span for cell i.
func leafCell(buf []byte, i uint32) []byte {
	off := leafCellOffset(i)
	return buf[off : off+LeafNodeCellSize]
}

func leafKey(buf []byte, i uint32) uint32 {
	off := leafCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off+LeafNodeKeyOffset : off+LeafNodeKeyOffset+LeafNodeKeySize])
}

func setLeafKey(buf []byte, i uint32, key uint32) {
	off := leafCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off+LeafNodeKeyOffset:off+LeafNodeKeyOffset+LeafNodeKeySize], key)
}

// leafValue returns the RowSize-byte serialized row span for cell i.
func leafValue(buf []byte, i uint32) []byte {
	off := leafCellOffset(i)
	return buf[off+LeafNodeValueOffset : off+LeafNodeValueOffset+LeafNodeValueSize]
}

func initializeLeaf(buf []byte) {
	setNodeType(buf, NodeTypeLeaf)
	setNodeRoot(buf, false)
	setLeafNumCells(buf, 0)
	setLeafNextLeaf(buf, 0)
}

// --- Internal node accessors ---

func internalNumKeys(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[InternalNodeNumKeysOffset : InternalNodeNumKeysOffset+InternalNodeNumKeysSize])
}

func setInternalNumKeys(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[InternalNodeNumKeysOffset:InternalNodeNumKeysOffset+InternalNodeNumKeysSize], n)
}

func internalRightChild(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[InternalNodeRightChildOffset : InternalNodeRightChildOffset+InternalNodeRightChildSize])
}

func setInternalRightChild(buf []byte, page uint32) {
	binary.LittleEndian.PutUint32(buf[InternalNodeRightChildOffset:InternalNodeRightChildOffset+InternalNodeRightChildSize], page)
}

func internalCellOffset(i uint32) int {
	return int(InternalNodeHeaderSize + i*InternalNodeCellSize)
}

func internalCellChild(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+InternalNodeChildSize])
}

func setInternalCellChild(buf []byte, i uint32, page uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+InternalNodeChildSize], page)
}

func internalKey(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i) + InternalNodeChildSize
	return binary.LittleEndian.Uint32(buf[off : off+InternalNodeKeySize])
}

func setInternalKey(buf []byte, i uint32, key uint32) {
	off := internalCellOffset(i) + InternalNodeChildSize
	binary.LittleEndian.PutUint32(buf[off:off+InternalNodeKeySize], key)
}

// internalChild returns child i, where i == numKeys names the right child.
func internalChild(buf []byte, i uint32) uint32 {
	numKeys := internalNumKeys(buf)
	if i == numKeys {
		return internalRightChild(buf)
	}
	return internalCellChild(buf, i)
}

func initializeInternal(buf []byte) {
	setNodeType(buf, NodeTypeInternal)
	setNodeRoot(buf, false)
	setInternalNumKeys(buf, 0)
	setInternalRightChild(buf, InvalidPage)
}
