package pager

import "errors"

// ErrCorruptFile indicates the database file's length is not a
// multiple of PageSize.
var ErrCorruptFile = errors.New("pager: corrupt file length")

// ErrPageOutOfBounds indicates a page number at or beyond TableMaxPages was requested.
var ErrPageOutOfBounds = errors.New("pager: page number out of bounds")
