package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeLeaf(t *testing.T) {
	buf := make([]byte, 4096)
	initializeLeaf(buf)

	require.Equal(t, NodeTypeLeaf, getNodeType(buf))
	require.False(t, isNodeRoot(buf))
	require.Equal(t, uint32(0), leafNumCells(buf))
	require.Equal(t, uint32(0), leafNextLeaf(buf))
}

func TestInitializeInternal(t *testing.T) {
	buf := make([]byte, 4096)
	initializeInternal(buf)

	require.Equal(t, NodeTypeInternal, getNodeType(buf))
	require.False(t, isNodeRoot(buf))
	require.Equal(t, uint32(0), internalNumKeys(buf))
	require.Equal(t, InvalidPage, internalRightChild(buf))
}

func TestLeafCellRoundTrip(t *testing.T) {
	buf := make([]byte, 4096)
	initializeLeaf(buf)
	setLeafNumCells(buf, 2)

	setLeafKey(buf, 0, 10)
	setLeafKey(buf, 1, 20)
	require.Equal(t, uint32(10), leafKey(buf, 0))
	require.Equal(t, uint32(20), leafKey(buf, 1))

	row := Row{ID: 20, Username: "x", Email: "y"}
	require.NoError(t, SerializeRow(row, leafValue(buf, 1)))
	got, err := DeserializeRow(leafValue(buf, 1))
	require.NoError(t, err)
	require.Equal(t, row, got)
}

func TestInternalCellRoundTrip(t *testing.T) {
	buf := make([]byte, 4096)
	initializeInternal(buf)
	setInternalNumKeys(buf, 2)

	setInternalCellChild(buf, 0, 5)
	setInternalKey(buf, 0, 100)
	setInternalCellChild(buf, 1, 6)
	setInternalKey(buf, 1, 200)
	setInternalRightChild(buf, 7)

	require.Equal(t, uint32(5), internalCellChild(buf, 0))
	require.Equal(t, uint32(100), internalKey(buf, 0))
	require.Equal(t, uint32(6), internalChild(buf, 1))
	require.Equal(t, uint32(7), internalChild(buf, 2)) // i == numKeys names the right child
}

func TestNodeRootAndParentPointer(t *testing.T) {
	buf := make([]byte, 4096)
	initializeLeaf(buf)

	setNodeRoot(buf, true)
	require.True(t, isNodeRoot(buf))
	setNodeRoot(buf, false)
	require.False(t, isNodeRoot(buf))

	setParentPointer(buf, 3)
	require.Equal(t, uint32(3), getParentPointer(buf))
}
