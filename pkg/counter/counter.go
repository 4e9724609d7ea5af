// Package counter provides the monotonic numbering used for accounting
// vouchers and invoice numbers. The core only consumes the interfaces;
// durable persistence keyed by property and period lives outside this
// module, and concurrent batches against the same seed must be
// serialized by the caller.
package counter

import (
	"context"
	"fmt"
)

// Voucher hands out sequential voucher numbers within one batch.
type Voucher interface {
	Next() int
}

// InvoiceStore persists per-property, per-period invoice counters.
type InvoiceStore interface {
	NextInvoiceNumber(ctx context.Context, propertyID string, year int, month int) (int, error)
}

// Sequence is the in-memory Voucher used for single batch runs.
type Sequence struct {
	next int
}

// NewSequence starts a sequence at the caller-supplied seed.
func NewSequence(seed int) *Sequence {
	return &Sequence{next: seed}
}

// Next returns the current number and advances the sequence.
func (s *Sequence) Next() int {
	n := s.next
	s.next++
	return n
}

// MemoryInvoiceStore is an InvoiceStore for tests and one-off CLI runs.
type MemoryInvoiceStore struct {
	counters map[string]int
}

// NewMemoryInvoiceStore returns an empty in-memory store.
func NewMemoryInvoiceStore() *MemoryInvoiceStore {
	return &MemoryInvoiceStore{counters: make(map[string]int)}
}

// NextInvoiceNumber increments and returns the counter for the given
// property and period.
func (m *MemoryInvoiceStore) NextInvoiceNumber(_ context.Context, propertyID string, year int, month int) (int, error) {
	key := keyFor(propertyID, year, month)
	m.counters[key]++
	return m.counters[key], nil
}

func keyFor(propertyID string, year, month int) string {
	return fmt.Sprintf("%s/%d/%d", propertyID, year, month)
}
