// Package table implements the fixed-schema row codec, the B+Tree
// node layout and split/propagation algorithm, and the Table+Cursor
// API that the REPL drives: insert and select over a single
// persistent relation.
package table

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"vqlite/pager"
)

// Table owns the pager, whose page RootPageNum is always the tree's
// root, and exposes the keyed insert and full-scan select operations.
type Table struct {
	pager *pager.Pager
	log   *zap.Logger
}

// Open opens (or creates) the database file at path. A fresh file is
// initialized with an empty root leaf on page 0.
func Open(path string, log *zap.Logger) (*Table, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pg, err := pager.Open(path, log)
	if err != nil {
		return nil, err
	}
	t := &Table{pager: pg, log: log}
	if pg.NumPages() == 0 {
		root, err := pg.GetPage(RootPageNum)
		if err != nil {
			return nil, err
		}
		initializeLeaf(root.Data[:])
		setNodeRoot(root.Data[:], true)
		root.Dirty = true
		log.Info("table: initialized new database", zap.String("path", path))
	}
	return t, nil
}

// Close flushes and closes the underlying pager.
func (t *Table) Close() error {
	return t.pager.Close()
}

// Insert adds row under key row.ID. It returns ErrDuplicateKey if the
// key already exists, or ErrTableFull if the pager has no more pages
// to give a split.
func (t *Table) Insert(row Row) error {
	c, err := t.find(row.ID)
	if err != nil {
		return err
	}
	page, err := t.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	if c.cellNum < leafNumCells(buf) && leafKey(buf, c.cellNum) == row.ID {
		return ErrDuplicateKey
	}
	return t.leafNodeInsert(c, row.ID, row)
}

// Select writes every row in ascending key order to w, one per line.
func (t *Table) Select(w io.Writer) error {
	c, err := t.Start()
	if err != nil {
		return err
	}
	for !c.EndOfTable() {
		row, err := c.Value()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, row.String())
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// find descends from the root to the leaf that should contain key,
// returning a cursor positioned at the key itself or its insertion point.
func (t *Table) find(key uint32) (*Cursor, error) {
	return t.findFrom(RootPageNum, key)
}

func (t *Table) findFrom(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	buf := page.Data[:]
	if getNodeType(buf) == NodeTypeLeaf {
		return t.leafFind(pageNum, key)
	}
	idx := findChildIndex(buf, key)
	child := internalChild(buf, idx)
	if child == InvalidPage {
		return nil, fmt.Errorf("table: find: %w", ErrInvalidChild)
	}
	return t.findFrom(child, key)
}

func (t *Table) leafFind(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	buf := page.Data[:]
	numCells := leafNumCells(buf)
	lo, hi := uint32(0), numCells
	for lo < hi {
		mid := (lo + hi) / 2
		if leafKey(buf, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &Cursor{table: t, pageNum: pageNum, cellNum: lo, endOfTable: numCells == 0}, nil
}

// findChildIndex returns the smallest index i such that
// internalKey(buf, i) >= key, or numKeys if no such key exists —
// i.e. the insertion point / the slot whose separator names key.
func findChildIndex(buf []byte, key uint32) uint32 {
	numKeys := internalNumKeys(buf)
	lo, hi := uint32(0), numKeys
	for lo < hi {
		mid := (lo + hi) / 2
		if internalKey(buf, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Start returns a cursor positioned at the first row in key order.
func (t *Table) Start() (*Cursor, error) {
	return t.find(0)
}

// getNodeMaxKey returns the maximum key stored in the subtree rooted
// at pageNum. For an internal node this recurses through the right
// child spine, which is required for separators to stay meaningful
// across multi-level splits (see table/btree.go).
func (t *Table) getNodeMaxKey(pageNum uint32) (uint32, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return 0, err
	}
	buf := page.Data[:]
	if getNodeType(buf) == NodeTypeLeaf {
		numCells := leafNumCells(buf)
		if numCells == 0 {
			return 0, nil
		}
		return leafKey(buf, numCells-1), nil
	}
	rc := internalRightChild(buf)
	if rc == InvalidPage {
		return 0, fmt.Errorf("table: getNodeMaxKey(page %d): %w", pageNum, ErrInvalidChild)
	}
	return t.getNodeMaxKey(rc)
}

// updateInternalNodeKey refreshes the separator key for the child
// previously keyed by oldKey, after that child's own max key changed.
func (t *Table) updateInternalNodeKey(nodePageNum uint32, oldKey, newKey uint32) error {
	page, err := t.pager.GetPage(nodePageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	idx := findChildIndex(buf, oldKey)
	setInternalKey(buf, idx, newKey)
	page.Dirty = true
	return nil
}
