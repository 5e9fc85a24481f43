package table

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	row := Row{ID: 7, Username: "alice", Email: "alice@example.com"}
	buf := make([]byte, RowSize)
	require.NoError(t, SerializeRow(row, buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, row, got)
}

func TestSerializeRowTruncatesOversizedFields(t *testing.T) {
	row := Row{
		ID:       1,
		Username: gofakeit.LetterN(UsernameSize + 5),
		Email:    gofakeit.LetterN(EmailSize + 5),
	}
	buf := make([]byte, RowSize)
	require.NoError(t, SerializeRow(row, buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Len(t, got.Username, UsernameSize)
	require.Len(t, got.Email, EmailSize)
	require.Equal(t, row.Username[:UsernameSize], got.Username)
	require.Equal(t, row.Email[:EmailSize], got.Email)
}

func TestSerializeRowWrongDestLength(t *testing.T) {
	row := Row{ID: 1, Username: "a", Email: "b"}
	err := SerializeRow(row, make([]byte, RowSize-1))
	require.Error(t, err)
}

func TestDeserializeRowTrimsTrailingNULPadding(t *testing.T) {
	row := Row{ID: 42, Username: "bob", Email: "bob@x.com"}
	buf := make([]byte, RowSize)
	require.NoError(t, SerializeRow(row, buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, "bob", got.Username)
	require.Equal(t, "bob@x.com", got.Email)
}

func TestRowString(t *testing.T) {
	row := Row{ID: 1, Username: "alice", Email: "alice@example.com"}
	require.Equal(t, "(1, alice, alice@example.com)", row.String())
}
