package table

// Cursor is a position (pageNum, cellNum) within the leaf chain, plus
// an end-of-table flag. Only one cursor is expected to be live and
// mutating the tree at a time (see SPEC_FULL.md §5).
type Cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// EndOfTable reports whether the cursor has advanced past the last row.
func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}

// Key returns the key at the cursor's current position.
func (c *Cursor) Key() (uint32, error) {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return 0, err
	}
	return leafKey(page.Data[:], c.cellNum), nil
}

// Value deserializes the row at the cursor's current position.
func (c *Cursor) Value() (Row, error) {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(leafValue(page.Data[:], c.cellNum))
}

// Advance moves the cursor to the next key in ascending order,
// following the leaf chain's next-leaf pointer when the current leaf
// is exhausted.
func (c *Cursor) Advance() error {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	c.cellNum++
	if c.cellNum < leafNumCells(buf) {
		return nil
	}
	next := leafNextLeaf(buf)
	if next == 0 {
		c.endOfTable = true
		return nil
	}
	c.pageNum = next
	c.cellNum = 0
	return nil
}
