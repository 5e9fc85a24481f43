package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vqlite/pager"
	"vqlite/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareUnrecognizedStatement
)

// doMetaCommand handles any input beginning with '.'. .exit flushes and
// closes db before terminating the process; .constants and .btree print
// to stdout directly and return MetaCommandSuccess. A failure to close
// the database or to print the tree terminates the process via fatalf.
func doMetaCommand(input string, db *table.Table) MetaCommandResult {
	switch input {
	case ".exit":
		if err := db.Close(); err != nil {
			fatalf("close: %v", err)
		}
		exit(0)
	case ".constants":
		printConstants()
	case ".btree":
		if err := db.PrintTree(stdout); err != nil {
			fatalf("print tree: %v", err)
		}
	default:
		return MetaCommandUnrecognizedCommand
	}
	return MetaCommandSuccess
}

func printConstants() {
	fmt.Fprintf(stdout, "ROW_SIZE: %d\n", table.RowSize)
	fmt.Fprintf(stdout, "COMMON_NODE_HEADER_SIZE: %d\n", table.CommonNodeHeaderSize)
	fmt.Fprintf(stdout, "LEAF_NODE_HEADER_SIZE: %d\n", table.LeafNodeHeaderSize)
	fmt.Fprintf(stdout, "LEAF_NODE_CELL_SIZE: %d\n", table.LeafNodeCellSize)
	fmt.Fprintf(stdout, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", table.LeafNodeSpaceForCells)
	fmt.Fprintf(stdout, "LEAF_NODE_MAX_CELLS: %d\n", table.LeafNodeMaxCells)
	fmt.Fprintf(stdout, "PAGE_SIZE: %d\n", pager.PageSize)
}

// prepareStatement parses one non-meta input line into stmt. It
// recognizes exactly two keywords; everything else is an unrecognized
// statement.
func prepareStatement(input string, stmt *Statement) (PrepareResult, error) {
	if strings.HasPrefix(input, "insert") {
		stmt.Type = StatementInsert
		return PrepareSuccess, prepareInsert(input, stmt)
	}
	if input == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess, nil
	}
	return PrepareUnrecognizedStatement, nil
}

// prepareInsert parses "insert <id> <username> <email>". The caller
// has already matched the "insert" keyword prefix.
func prepareInsert(input string, stmt *Statement) error {
	fields := strings.Fields(input)
	if len(fields) != 4 {
		return table.ErrSyntax
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return table.ErrSyntax
	}
	if id < 0 {
		return table.ErrNegativeID
	}
	username, email := fields[2], fields[3]
	if len(username) > table.UsernameSize || len(email) > table.EmailSize {
		return table.ErrStringTooLong
	}
	stmt.RowToInsert = table.Row{ID: uint32(id), Username: username, Email: email}
	return nil
}

// executeStatement runs a successfully prepared statement against db
// and prints the one-line outcome the REPL shows the user.
func executeStatement(stmt *Statement, db *table.Table) {
	var err error
	switch stmt.Type {
	case StatementInsert:
		err = db.Insert(stmt.RowToInsert)
	case StatementSelect:
		err = db.Select(stdout)
	}
	switch {
	case err == nil:
		fmt.Fprintln(stdout, "Executed.")
	case errors.Is(err, table.ErrTableFull):
		fmt.Fprintln(stdout, "Error: Table full.")
	case errors.Is(err, table.ErrDuplicateKey):
		fmt.Fprintln(stdout, "Error: Duplicate key.")
	default:
		fatalf("execute: %v", err)
	}
}
