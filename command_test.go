package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vqlite/table"
)

func tempDB(t *testing.T) *table.Table {
	t.Helper()
	tmp, err := os.CreateTemp("", "repl_test_*.db")
	require.NoError(t, err)
	path := tmp.Name()
	require.NoError(t, tmp.Close())
	t.Cleanup(func() { os.Remove(path) })

	db, err := table.Open(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()
	fn()
	return buf.String()
}

func TestPrepareInsertValid(t *testing.T) {
	var stmt Statement
	result, err := prepareStatement("insert 1 alice alice@example.com", &stmt)
	require.Equal(t, PrepareSuccess, result)
	require.NoError(t, err)
	require.Equal(t, StatementInsert, stmt.Type)
	require.Equal(t, table.Row{ID: 1, Username: "alice", Email: "alice@example.com"}, stmt.RowToInsert)
}

func TestPrepareInsertSyntaxError(t *testing.T) {
	var stmt Statement
	_, err := prepareStatement("insert 1 alice", &stmt)
	require.ErrorIs(t, err, table.ErrSyntax)
}

func TestPrepareInsertNegativeID(t *testing.T) {
	var stmt Statement
	_, err := prepareStatement("insert -1 alice alice@example.com", &stmt)
	require.ErrorIs(t, err, table.ErrNegativeID)
}

func TestPrepareInsertStringTooLong(t *testing.T) {
	var stmt Statement
	longEmail := make([]byte, table.EmailSize+1)
	for i := range longEmail {
		longEmail[i] = 'a'
	}
	_, err := prepareStatement("insert 1 alice "+string(longEmail), &stmt)
	require.ErrorIs(t, err, table.ErrStringTooLong)
}

func TestPrepareSelect(t *testing.T) {
	var stmt Statement
	result, err := prepareStatement("select", &stmt)
	require.Equal(t, PrepareSuccess, result)
	require.NoError(t, err)
	require.Equal(t, StatementSelect, stmt.Type)
}

func TestPrepareUnrecognized(t *testing.T) {
	var stmt Statement
	result, _ := prepareStatement("drop table users", &stmt)
	require.Equal(t, PrepareUnrecognizedStatement, result)
}

func TestExecuteInsertAndSelect(t *testing.T) {
	db := tempDB(t)

	out := captureStdout(t, func() {
		var stmt Statement
		_, err := prepareStatement("insert 1 alice alice@example.com", &stmt)
		require.NoError(t, err)
		executeStatement(&stmt, db)
	})
	require.Equal(t, "Executed.\n", out)

	out = captureStdout(t, func() {
		var stmt Statement
		_, err := prepareStatement("select", &stmt)
		require.NoError(t, err)
		executeStatement(&stmt, db)
	})
	require.Equal(t, "(1, alice, alice@example.com)\nExecuted.\n", out)
}

func TestExecuteDuplicateKey(t *testing.T) {
	db := tempDB(t)
	require.NoError(t, db.Insert(table.Row{ID: 1, Username: "a", Email: "b"}))

	out := captureStdout(t, func() {
		var stmt Statement
		_, err := prepareStatement("insert 1 a b", &stmt)
		require.NoError(t, err)
		executeStatement(&stmt, db)
	})
	require.Equal(t, "Error: Duplicate key.\n", out)
}

func TestDoMetaCommandConstants(t *testing.T) {
	db := tempDB(t)

	out := captureStdout(t, func() {
		result := doMetaCommand(".constants", db)
		require.Equal(t, MetaCommandSuccess, result)
	})
	require.Contains(t, out, "ROW_SIZE: 291")
}

func TestDoMetaCommandUnrecognized(t *testing.T) {
	db := tempDB(t)
	result := doMetaCommand(".nonsense", db)
	require.Equal(t, MetaCommandUnrecognizedCommand, result)
}
