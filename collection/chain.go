package collection

import (
	"container/list"

	"github.com/fulldump/studentdb/record"
)

// Chain holds the records of one bucket, most recently inserted first.
type Chain interface {
	PushFront(r *record.Record)
	Get(id int) (*record.Record, bool)
	Replace(r *record.Record) bool
	Delete(id int) bool
	Len() int
	Traverse(iterator func(r *record.Record) bool)
}

const (
	ChainSlice = "slice"
	ChainList  = "list"
)

func newChainFactory(kind string) func() Chain {
	switch kind {
	case ChainList:
		return func() Chain { return NewListChain() }
	default:
		return func() Chain { return NewSliceChain() }
	}
}

// --- Slice Implementation ---

// SliceChain keeps the head of the chain at position 0
type SliceChain struct {
	records []*record.Record
}

func NewSliceChain() *SliceChain {
	return &SliceChain{}
}

func (s *SliceChain) PushFront(r *record.Record) {
	s.records = append(s.records, nil)
	copy(s.records[1:], s.records)
	s.records[0] = r
}

func (s *SliceChain) find(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *SliceChain) Get(id int) (*record.Record, bool) {
	i := s.find(id)
	if i < 0 {
		return nil, false
	}
	return s.records[i], true
}

func (s *SliceChain) Replace(r *record.Record) bool {
	i := s.find(r.ID)
	if i < 0 {
		return false
	}
	s.records[i] = r
	return true
}

func (s *SliceChain) Delete(id int) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	copy(s.records[i:], s.records[i+1:])
	last := len(s.records) - 1
	s.records[last] = nil // release the reference
	s.records = s.records[:last]
	return true
}

func (s *SliceChain) Len() int {
	return len(s.records)
}

func (s *SliceChain) Traverse(iterator func(r *record.Record) bool) {
	for _, r := range s.records {
		if !iterator(r) {
			break
		}
	}
}

// --- Linked List Implementation ---

type ListChain struct {
	l *list.List
}

func NewListChain() *ListChain {
	return &ListChain{
		l: list.New(),
	}
}

func (c *ListChain) PushFront(r *record.Record) {
	c.l.PushFront(r)
}

func (c *ListChain) find(id int) *list.Element {
	for e := c.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*record.Record).ID == id {
			return e
		}
	}
	return nil
}

func (c *ListChain) Get(id int) (*record.Record, bool) {
	e := c.find(id)
	if e == nil {
		return nil, false
	}
	return e.Value.(*record.Record), true
}

func (c *ListChain) Replace(r *record.Record) bool {
	e := c.find(r.ID)
	if e == nil {
		return false
	}
	e.Value = r
	return true
}

func (c *ListChain) Delete(id int) bool {
	e := c.find(id)
	if e == nil {
		return false
	}
	c.l.Remove(e)
	return true
}

func (c *ListChain) Len() int {
	return c.l.Len()
}

func (c *ListChain) Traverse(iterator func(r *record.Record) bool) {
	for e := c.l.Front(); e != nil; e = e.Next() {
		if !iterator(e.Value.(*record.Record)) {
			break
		}
	}
}
