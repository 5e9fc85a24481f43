// Package pager owns the on-disk file and the fixed-size array of
// cached page buffers that every higher layer reads and writes
// through. It never interprets page contents — that is table's job.
package pager

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	// PageSize is the fixed size, in bytes, of every page on disk and in memory.
	PageSize = 4096
	// TableMaxPages bounds how many pages a single database file may ever hold.
	TableMaxPages = 100
)

// Page is a single 4096-byte buffer, either unloaded (absent from the
// Pager's pages array) or owned by exactly one Pager.
type Page struct {
	Data  [PageSize]byte
	Dirty bool
}

// Pager maps page numbers to in-memory Page buffers, loading on demand
// and writing back only on Close.
type Pager struct {
	file     *os.File
	pages    [TableMaxPages]*Page
	numPages uint32
	log      *zap.Logger
}

// Open opens (or creates) the file at path for read+write. It fails if
// the file's length is not a multiple of PageSize, which indicates a
// corrupt database file.
func Open(path string, log *zap.Logger) (*Pager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		log.Error("pager: open failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("pager: open %q: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pager: stat %q: %w", path, err)
	}
	size := fi.Size()
	if size%PageSize != 0 {
		f.Close()
		log.Error("pager: corrupt file length", zap.String("path", path), zap.Int64("size", size))
		return nil, fmt.Errorf("pager: %q length %d is not a multiple of page size %d: %w", path, size, PageSize, ErrCorruptFile)
	}
	numPages := uint32(size / PageSize)
	log.Info("pager: opened", zap.String("path", path), zap.Uint32("num_pages", numPages))
	return &Pager{file: f, numPages: numPages, log: log}, nil
}

// NumPages reports how many pages the file is currently known to span,
// including pages allocated in memory but not yet flushed.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetUnusedPageNum returns the page number that the next allocation
// will use. It does not itself allocate anything; the page becomes
// real only on the subsequent GetPage call.
func (p *Pager) GetUnusedPageNum() uint32 {
	return p.numPages
}

// GetPage returns a stable, writable buffer for page n, loading it
// from disk on first access (or zero-filling it if n lies beyond the
// current file length).
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if n >= TableMaxPages {
		p.log.Error("pager: page number out of bounds", zap.Uint32("page", n))
		return nil, fmt.Errorf("pager: page %d exceeds max pages %d: %w", n, TableMaxPages, ErrPageOutOfBounds)
	}
	if p.pages[n] == nil {
		page := &Page{}
		if n < p.numPages {
			if err := p.readPage(n, page); err != nil {
				return nil, err
			}
			p.log.Debug("pager: loaded page from disk", zap.Uint32("page", n))
		} else {
			p.log.Debug("pager: zero-filled new page", zap.Uint32("page", n))
		}
		p.pages[n] = page
		if n >= p.numPages {
			p.numPages = n + 1
		}
	}
	return p.pages[n], nil
}

func (p *Pager) readPage(n uint32, page *Page) error {
	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", n, err)
	}
	if _, err := io.ReadFull(p.file, page.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("pager: read page %d: %w", n, err)
	}
	return nil
}

// Close flushes every loaded page to disk, in page-number order, then
// closes the file. It does not truncate the file to the in-memory
// page count.
func (p *Pager) Close() error {
	flushed := 0
	for n := uint32(0); n < p.numPages; n++ {
		page := p.pages[n]
		if page == nil {
			continue
		}
		if err := p.flushPage(n, page); err != nil {
			p.log.Error("pager: flush failed", zap.Uint32("page", n), zap.Error(err))
			return err
		}
		flushed++
	}
	p.log.Info("pager: closed", zap.Int("pages_flushed", flushed))
	return p.file.Close()
}

func (p *Pager) flushPage(n uint32, page *Page) error {
	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", n, err)
	}
	if _, err := p.file.Write(page.Data[:]); err != nil {
		return fmt.Errorf("pager: write page %d: %w", n, err)
	}
	page.Dirty = false
	return nil
}
