package main

import (
	"vqlite/table"
)

// StatementType distinguishes the two hardcoded statement forms this
// REPL understands; there is no general SQL grammar.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed form of one input line, ready for execution.
type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}
