package table

import (
	"go.uber.org/zap"

	"vqlite/pager"
)

// leafNodeInsert inserts (key, row) at the cursor's position, shifting
// later cells right, or delegates to a leaf split when the leaf is full.
func (t *Table) leafNodeInsert(c *Cursor, key uint32, row Row) error {
	page, err := t.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	numCells := leafNumCells(buf)
	if numCells >= LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(c, key, row)
	}
	for i := numCells; i > c.cellNum; i-- {
		copy(leafCell(buf, i), leafCell(buf, i-1))
	}
	setLeafKey(buf, c.cellNum, key)
	if err := SerializeRow(row, leafValue(buf, c.cellNum)); err != nil {
		return err
	}
	setLeafNumCells(buf, numCells+1)
	page.Dirty = true
	return nil
}

// leafNodeSplitAndInsert splits a full leaf into two, distributing the
// MaxCells+1 cells (the existing cells plus the one being inserted)
// across old and new, then propagates the split upward.
func (t *Table) leafNodeSplitAndInsert(c *Cursor, key uint32, row Row) error {
	oldPageNum := c.pageNum
	oldPage, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldBuf := oldPage.Data[:]
	wasRoot := isNodeRoot(oldBuf)
	oldMaxBefore := leafKey(oldBuf, LeafNodeMaxCells-1)

	newPageNum := t.pager.GetUnusedPageNum()
	if newPageNum >= pager.TableMaxPages {
		return ErrTableFull
	}
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	newBuf := newPage.Data[:]
	initializeLeaf(newBuf)
	setParentPointer(newBuf, getParentPointer(oldBuf))
	setLeafNextLeaf(newBuf, leafNextLeaf(oldBuf))
	setLeafNextLeaf(oldBuf, newPageNum)

	for i := int(LeafNodeMaxCells); i >= 0; i-- {
		ii := uint32(i)
		var destBuf []byte
		if ii >= LeafNodeLeftSplitCount {
			destBuf = newBuf
		} else {
			destBuf = oldBuf
		}
		destIndex := ii % LeafNodeLeftSplitCount
		destCell := leafCell(destBuf, destIndex)
		switch {
		case ii == c.cellNum:
			setLeafKey(destBuf, destIndex, key)
			if err := SerializeRow(row, destCell[LeafNodeValueOffset:LeafNodeValueOffset+LeafNodeValueSize]); err != nil {
				return err
			}
		case ii > c.cellNum:
			copy(destCell, leafCell(oldBuf, ii-1))
		default:
			copy(destCell, leafCell(oldBuf, ii))
		}
	}
	setLeafNumCells(oldBuf, LeafNodeLeftSplitCount)
	setLeafNumCells(newBuf, LeafNodeRightSplitCount)
	oldPage.Dirty = true
	newPage.Dirty = true

	newMaxOfOld := leafKey(oldBuf, LeafNodeLeftSplitCount-1)
	t.log.Debug("table: leaf split", zap.Uint32("old", oldPageNum), zap.Uint32("new", newPageNum))

	if wasRoot {
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := getParentPointer(oldBuf)
	if err := t.updateInternalNodeKey(parentPageNum, oldMaxBefore, newMaxOfOld); err != nil {
		return err
	}
	return t.internalNodeInsert(parentPageNum, newPageNum)
}

// internalNodeInsert introduces child as a new child of parent,
// splicing a separator cell (or filling the empty-right-child case),
// or delegates to an internal split when parent is already full.
// It does not reparent child; callers set child's parent pointer
// whenever the child is being attached somewhere new.
func (t *Table) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parentPage, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	parentBuf := parentPage.Data[:]

	childMax, err := t.getNodeMaxKey(childPageNum)
	if err != nil {
		return err
	}
	index := findChildIndex(parentBuf, childMax)

	numKeys := internalNumKeys(parentBuf)
	if numKeys >= InternalNodeMaxCells {
		return t.internalNodeSplitAndInsert(parentPageNum, childPageNum)
	}

	rightChild := internalRightChild(parentBuf)
	if rightChild == InvalidPage {
		setInternalRightChild(parentBuf, childPageNum)
		parentPage.Dirty = true
		return nil
	}

	rightChildMax, err := t.getNodeMaxKey(rightChild)
	if err != nil {
		return err
	}

	setInternalNumKeys(parentBuf, numKeys+1)
	if childMax > rightChildMax {
		setInternalCellChild(parentBuf, numKeys, rightChild)
		setInternalKey(parentBuf, numKeys, rightChildMax)
		setInternalRightChild(parentBuf, childPageNum)
	} else {
		for i := numKeys; i > index; i-- {
			copy(internalRawCell(parentBuf, i), internalRawCell(parentBuf, i-1))
		}
		setInternalCellChild(parentBuf, index, childPageNum)
		setInternalKey(parentBuf, index, childMax)
	}
	parentPage.Dirty = true
	return nil
}

func internalRawCell(buf []byte, i uint32) []byte {
	off := internalCellOffset(i)
	return buf[off : off+InternalNodeCellSize]
}

// internalNodeSplitAndInsert splits a full internal node, moving its
// right half (including the right-child spine) into a new sibling,
// places the inserted child on whichever side it belongs, and
// propagates the split upward (or builds a new root).
func (t *Table) internalNodeSplitAndInsert(oldPageNum, childPageNum uint32) error {
	oldMax, err := t.getNodeMaxKey(oldPageNum)
	if err != nil {
		return err
	}
	childMax, err := t.getNodeMaxKey(childPageNum)
	if err != nil {
		return err
	}

	newPageNum := t.pager.GetUnusedPageNum()
	if newPageNum >= pager.TableMaxPages {
		return ErrTableFull
	}

	oldPage, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	wasRoot := isNodeRoot(oldPage.Data[:])

	var parentPageNum uint32
	if wasRoot {
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		parentPageNum = RootPageNum
		rootPage, err := t.pager.GetPage(RootPageNum)
		if err != nil {
			return err
		}
		oldPageNum = internalChild(rootPage.Data[:], 0)
		oldPage, err = t.pager.GetPage(oldPageNum)
		if err != nil {
			return err
		}
	} else {
		parentPageNum = getParentPointer(oldPage.Data[:])
		newPage, err := t.pager.GetPage(newPageNum)
		if err != nil {
			return err
		}
		initializeInternal(newPage.Data[:])
		newPage.Dirty = true
	}
	oldBuf := oldPage.Data[:]

	// Move the right half of old (including its right-child spine) into new.
	oldRightChild := internalRightChild(oldBuf)
	if err := t.internalNodeInsert(newPageNum, oldRightChild); err != nil {
		return err
	}
	if err := t.reparent(oldRightChild, newPageNum); err != nil {
		return err
	}
	setInternalRightChild(oldBuf, InvalidPage)
	oldPage.Dirty = true

	for i := int(InternalNodeMaxCells - 1); i > int(InternalNodeMaxCells/2); i-- {
		ii := uint32(i)
		child := internalCellChild(oldBuf, ii)
		if err := t.internalNodeInsert(newPageNum, child); err != nil {
			return err
		}
		if err := t.reparent(child, newPageNum); err != nil {
			return err
		}
		setInternalNumKeys(oldBuf, internalNumKeys(oldBuf)-1)
		oldPage.Dirty = true
	}

	numKeys := internalNumKeys(oldBuf)
	setInternalRightChild(oldBuf, internalCellChild(oldBuf, numKeys-1))
	setInternalNumKeys(oldBuf, numKeys-1)
	oldPage.Dirty = true

	maxAfterSplit, err := t.getNodeMaxKey(oldPageNum)
	if err != nil {
		return err
	}
	if childMax < maxAfterSplit {
		if err := t.internalNodeInsert(oldPageNum, childPageNum); err != nil {
			return err
		}
		if err := t.reparent(childPageNum, oldPageNum); err != nil {
			return err
		}
	} else {
		if err := t.internalNodeInsert(newPageNum, childPageNum); err != nil {
			return err
		}
		if err := t.reparent(childPageNum, newPageNum); err != nil {
			return err
		}
	}

	newOldMax, err := t.getNodeMaxKey(oldPageNum)
	if err != nil {
		return err
	}
	if err := t.updateInternalNodeKey(parentPageNum, oldMax, newOldMax); err != nil {
		return err
	}

	if !wasRoot {
		if err := t.internalNodeInsert(parentPageNum, newPageNum); err != nil {
			return err
		}
		if err := t.reparent(newPageNum, parentPageNum); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) reparent(childPageNum, parentPageNum uint32) error {
	page, err := t.pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	setParentPointer(page.Data[:], parentPageNum)
	page.Dirty = true
	return nil
}

// createNewRoot is invoked when page 0 (the root) overflows. It copies
// the root's current contents into a freshly allocated left child,
// reparents that child's own children if it was internal, then
// re-initializes page 0 as an internal root with two children: the
// left child and rightChildPage.
func (t *Table) createNewRoot(rightChildPage uint32) error {
	rootPage, err := t.pager.GetPage(RootPageNum)
	if err != nil {
		return err
	}
	rootBuf := rootPage.Data[:]
	originalType := getNodeType(rootBuf)

	rightPage, err := t.pager.GetPage(rightChildPage)
	if err != nil {
		return err
	}
	leftChildPage := t.pager.GetUnusedPageNum()
	if leftChildPage >= pager.TableMaxPages {
		return ErrTableFull
	}
	leftPage, err := t.pager.GetPage(leftChildPage)
	if err != nil {
		return err
	}
	copy(leftPage.Data[:], rootBuf)
	setNodeRoot(leftPage.Data[:], false)
	leftPage.Dirty = true

	if originalType == NodeTypeInternal {
		leftBuf := leftPage.Data[:]
		numKeys := internalNumKeys(leftBuf)
		for i := uint32(0); i < numKeys; i++ {
			if err := t.reparent(internalCellChild(leftBuf, i), leftChildPage); err != nil {
				return err
			}
		}
		if rc := internalRightChild(leftBuf); rc != InvalidPage {
			if err := t.reparent(rc, leftChildPage); err != nil {
				return err
			}
		}
		initializeInternal(rightPage.Data[:])
		rightPage.Dirty = true
	}

	leftMax, err := t.getNodeMaxKey(leftChildPage)
	if err != nil {
		return err
	}

	initializeInternal(rootBuf)
	setNodeRoot(rootBuf, true)
	setInternalNumKeys(rootBuf, 1)
	setInternalCellChild(rootBuf, 0, leftChildPage)
	setInternalKey(rootBuf, 0, leftMax)
	setInternalRightChild(rootBuf, rightChildPage)
	rootPage.Dirty = true

	if err := t.reparent(leftChildPage, RootPageNum); err != nil {
		return err
	}
	if err := t.reparent(rightChildPage, RootPageNum); err != nil {
		return err
	}

	t.log.Debug("table: root split", zap.Uint32("left", leftChildPage), zap.Uint32("right", rightChildPage))
	return nil
}
