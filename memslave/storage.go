package memslave

import "github.com/google/btree"

const pageBytes = 4096

type page struct {
	base uint64
	data []byte
}

func (p *page) Less(than btree.Item) bool {
	return p.base < than.(*page).base
}

// A Storage is a sparse byte-addressable memory. Pages are allocated on first
// write; reads from untouched locations return zero.
type Storage struct {
	pages *btree.BTree
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{pages: btree.New(2)}
}

func (s *Storage) pageFor(addr uint64, create bool) *page {
	base := addr / pageBytes * pageBytes

	if item := s.pages.Get(&page{base: base}); item != nil {
		return item.(*page)
	}

	if !create {
		return nil
	}

	p := &page{base: base, data: make([]byte, pageBytes)}
	s.pages.ReplaceOrInsert(p)

	return p
}

// ReadByte returns the byte at addr.
func (s *Storage) ReadByte(addr uint64) byte {
	p := s.pageFor(addr, false)
	if p == nil {
		return 0
	}
	return p.data[addr-p.base]
}

// WriteByte stores one byte at addr.
func (s *Storage) WriteByte(addr uint64, b byte) {
	p := s.pageFor(addr, true)
	p.data[addr-p.base] = b
}

// Read returns n bytes starting at addr.
func (s *Storage) Read(addr uint64, n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = s.ReadByte(addr + uint64(i))
	}
	return data
}

// Write stores data starting at addr.
func (s *Storage) Write(addr uint64, data []byte) {
	for i, b := range data {
		s.WriteByte(addr+uint64(i), b)
	}
}
