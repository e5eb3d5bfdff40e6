// Package sequence allocates the human-facing running numbers for clients and
// membership plans. Numbers start at 1, stay dense by reusing the lowest freed
// number, and are guarded by a unique index at insert time.
package sequence

import (
	"context"
	"sort"
)

type Kind string

const (
	KindClient         Kind = "client"
	KindMembershipPlan Kind = "membership_plan"
)

// Lister reports every number currently assigned within a namespace.
type Lister interface {
	ListIdentifiers(ctx context.Context, kind Kind) ([]int, error)
}

// Next returns the smallest positive integer not present in ids. Non-positive
// values are ignored; upstream data may carry zeroes from older imports.
//
// This is a full scan, O(n) per allocation. Fine at gym scale (thousands of
// rows), not something to lift into a high-volume system as is.
func Next(ids []int) int {
	valid := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 1
	}

	sort.Ints(valid)

	next := 1
	for _, id := range valid {
		if id > next {
			return next
		}
		if id == next {
			next++
		}
	}
	return next
}

type Allocator struct {
	lister Lister
}

func NewAllocator(lister Lister) *Allocator {
	return &Allocator{lister: lister}
}

// Allocate computes the next free number for the namespace. It is a pure
// read-then-decide: two concurrent callers can compute the same number, in
// which case the second insert fails on the unique index and the caller
// retries allocation once before surfacing a conflict.
func (a *Allocator) Allocate(ctx context.Context, kind Kind) (int, error) {
	ids, err := a.lister.ListIdentifiers(ctx, kind)
	if err != nil {
		return 0, err
	}
	return Next(ids), nil
}
