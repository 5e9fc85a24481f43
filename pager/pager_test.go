package pager

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	tmp, err := os.CreateTemp("", "pager_test_*.db")
	require.NoError(t, err)
	path := tmp.Name()
	require.NoError(t, tmp.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestOpenEmptyFile(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, uint32(0), p.NumPages())
}

func TestOpenRejectsMisalignedFile(t *testing.T) {
	path := tempDBPath(t)
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize+17), 0600))

	_, err := Open(path, zap.NewNop())
	require.ErrorIs(t, err, ErrCorruptFile)
}

func TestGetPageOutOfBounds(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	_, err = p.GetPage(TableMaxPages)
	require.ErrorIs(t, err, ErrPageOutOfBounds)
}

func TestGetPageZeroFillsBeyondFile(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, uint32(0), p.GetUnusedPageNum())

	page, err := p.GetPage(0)
	require.NoError(t, err)
	for _, b := range page.Data {
		require.Zero(t, b)
	}
	require.Equal(t, uint32(1), p.NumPages())
	require.Equal(t, uint32(1), p.GetUnusedPageNum())
}

func TestFlushAndReopenPreservesContent(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	page, err := p.GetPage(0)
	require.NoError(t, err)
	page.Data[0] = 0xAB
	page.Data[PageSize-1] = 0xCD
	page.Dirty = true
	require.NoError(t, p.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, fi.Size()%PageSize)

	p2, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p2.Close()
	require.Equal(t, uint32(1), p2.NumPages())

	reread, err := p2.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), reread.Data[0])
	require.Equal(t, byte(0xCD), reread.Data[PageSize-1])
}

func TestGetPageReturnsStableBuffer(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	a, err := p.GetPage(3)
	require.NoError(t, err)
	a.Data[10] = 42

	b, err := p.GetPage(3)
	require.NoError(t, err)
	require.Equal(t, byte(42), b.Data[10])
}
