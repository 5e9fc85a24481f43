package table

import (
	"encoding/binary"
	"fmt"
)

// Row is the single fixed-schema record this engine stores.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// String formats a row the way `select` prints it.
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

// SerializeRow writes exactly RowSize bytes to dst in field order
// id, username, email. Strings longer than their fixed width are
// truncated; shorter strings are zero-padded.
func SerializeRow(row Row, dst []byte) error {
	if len(dst) != RowSize {
		return fmt.Errorf("table: SerializeRow: dst length %d, want %d", len(dst), RowSize)
	}
	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], row.ID)
	copy(dst[UsernameOffset:UsernameOffset+UsernameSize], row.Username)
	copy(dst[EmailOffset:EmailOffset+EmailSize], row.Email)
	return nil
}

// DeserializeRow is the inverse of SerializeRow: it reads RowSize
// bytes from src and trims trailing NULs from the string fields.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, fmt.Errorf("table: DeserializeRow: src length %d, want %d", len(src), RowSize)
	}
	id := binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize])
	username := trimNUL(src[UsernameOffset : UsernameOffset+UsernameSize])
	email := trimNUL(src[EmailOffset : EmailOffset+EmailSize])
	return Row{ID: id, Username: username, Email: email}, nil
}

func trimNUL(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return string(b[:i])
}
