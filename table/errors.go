package table

import "errors"

// Execute errors: surfaced to the REPL, which continues.
var (
	ErrTableFull    = errors.New("table full")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Prepare errors: surfaced to the REPL, which reprompts.
var (
	ErrSyntax                = errors.New("syntax error. Could not parse statement")
	ErrStringTooLong         = errors.New("string is too long")
	ErrNegativeID            = errors.New("ID must be positive")
	ErrUnrecognizedStatement = errors.New("unrecognized keyword at start of statement")
)

// Fatal errors: terminate the process.
var (
	ErrInvalidChild = errors.New("table: internal node right child is INVALID where a valid pointer was expected")
)
