package sequence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int
		expected int
	}{
		{"empty namespace", nil, 1},
		{"gap in middle", []int{1, 2, 4, 5}, 3},
		{"dense sequence", []int{1, 2, 3}, 4},
		{"first number freed", []int{2, 3}, 1},
		{"unsorted input", []int{5, 1, 3}, 2},
		{"duplicates tolerated", []int{1, 1, 2}, 3},
		{"malformed ids ignored", []int{0, -4, 2}, 1},
		{"only malformed ids", []int{0, -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Next(tt.ids))
		})
	}
}

type staticLister struct {
	ids map[Kind][]int
}

func (s staticLister) ListIdentifiers(_ context.Context, kind Kind) ([]int, error) {
	return s.ids[kind], nil
}

func TestAllocatorKeepsNamespacesApart(t *testing.T) {
	allocator := NewAllocator(staticLister{ids: map[Kind][]int{
		KindClient:         {1, 2, 3},
		KindMembershipPlan: {2},
	}})

	got, err := allocator.Allocate(context.Background(), KindClient)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = allocator.Allocate(context.Background(), KindMembershipPlan)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
