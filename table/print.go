package table

import (
	"fmt"
	"io"
)

// PrintTree writes an indented, depth-first rendering of the tree
// rooted at the tree's root page, in the format the .btree
// meta-command shows the user.
func (t *Table) PrintTree(w io.Writer) error {
	return t.printNode(w, RootPageNum, 0)
}

func (t *Table) printNode(w io.Writer, pageNum uint32, depth int) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	indent := func(extra int) {
		for i := 0; i < depth+extra; i++ {
			fmt.Fprint(w, "  ")
		}
	}

	if getNodeType(buf) == NodeTypeLeaf {
		numCells := leafNumCells(buf)
		indent(0)
		fmt.Fprintf(w, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			indent(1)
			fmt.Fprintf(w, "- %d\n", leafKey(buf, i))
		}
		return nil
	}

	numKeys := internalNumKeys(buf)
	indent(0)
	fmt.Fprintf(w, "- internal (size %d)\n", numKeys)
	for i := uint32(0); i < numKeys; i++ {
		child := internalCellChild(buf, i)
		if err := t.printNode(w, child, depth+1); err != nil {
			return err
		}
		indent(1)
		fmt.Fprintf(w, "- key %d\n", internalKey(buf, i))
	}
	rightChild := internalRightChild(buf)
	if rightChild != InvalidPage {
		if err := t.printNode(w, rightChild, depth+1); err != nil {
			return err
		}
	}
	return nil
}
