// Command vqlite is a single-table, single-user embedded database with
// a line-oriented REPL: a teaching-scale reimplementation of SQLite's
// B+Tree storage engine, not a general SQL database.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"vqlite/table"
)

var stdout io.Writer = os.Stdout

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exit(1)
}

var exit = os.Exit

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Must supply a database filename.")
		exit(1)
		return
	}
	path := os.Args[1]

	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		exit(1)
		return
	}
	defer log.Sync()

	db, err := table.Open(path, log)
	if err != nil {
		fatalf("open %q: %v", path, err)
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printPrompt()
		input, err := readInput(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				exit(1)
				return
			}
			fatalf("read input: %v", err)
			return
		}

		if strings.HasPrefix(input, ".") {
			switch doMetaCommand(input, db) {
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognizedCommand:
				fmt.Fprintf(stdout, "Unrecognized command '%s'\n", input)
				continue
			}
		}

		var stmt Statement
		result, perr := prepareStatement(input, &stmt)
		switch result {
		case PrepareUnrecognizedStatement:
			fmt.Fprintf(stdout, "Unrecognized keyword at start of '%s'\n", input)
			continue
		}
		if perr != nil {
			fmt.Fprintln(stdout, prepareErrorMessage(perr))
			continue
		}

		executeStatement(&stmt, db)
	}
}

func prepareErrorMessage(err error) string {
	switch {
	case errors.Is(err, table.ErrSyntax):
		return "Syntax error. Could not parse statement."
	case errors.Is(err, table.ErrNegativeID):
		return "ID must be positive."
	case errors.Is(err, table.ErrStringTooLong):
		return "String is too long."
	default:
		return err.Error()
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if v := os.Getenv("VQLITE_LOG_LEVEL"); v != "" {
		if lvl, err := zap.ParseAtomicLevel(v); err == nil {
			cfg.Level = lvl
		}
	}
	return cfg.Build()
}
