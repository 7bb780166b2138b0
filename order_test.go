package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorder(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		id    string
		index int
		want  []string
	}{
		{
			name:  "move to front",
			ids:   []string{"A", "B", "C"},
			id:    "B",
			index: 0,
			want:  []string{"B", "A", "C"},
		},
		{
			name:  "move to middle",
			ids:   []string{"A", "B", "C"},
			id:    "A",
			index: 1,
			want:  []string{"B", "A", "C"},
		},
		{
			name:  "index measured after removal clamps to end",
			ids:   []string{"A", "B", "C"},
			id:    "A",
			index: 2,
			want:  []string{"B", "C", "A"},
		},
		{
			name:  "index past end appends",
			ids:   []string{"A", "B", "C"},
			id:    "B",
			index: 99,
			want:  []string{"A", "C", "B"},
		},
		{
			name:  "negative index clamps to front",
			ids:   []string{"A", "B", "C"},
			id:    "C",
			index: -3,
			want:  []string{"C", "A", "B"},
		},
		{
			name:  "absent id is inserted",
			ids:   []string{"A", "B"},
			id:    "X",
			index: 1,
			want:  []string{"A", "X", "B"},
		},
		{
			name:  "insert into empty sequence",
			ids:   []string{},
			id:    "A",
			index: 5,
			want:  []string{"A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reorder(tt.ids, tt.id, tt.index))
		})
	}
}

func TestReorderNoOpMoveIsIdempotent(t *testing.T) {
	ids := []string{"A", "B", "C", "D"}
	for i, id := range ids {
		assert.Equal(t, ids, reorder(ids, id, i), "moving %s to its current index must not change the order", id)
	}
}

func TestReorderPreservesRelativeOrder(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}
	for _, id := range ids {
		for index := -1; index <= len(ids)+1; index++ {
			got := reorder(ids, id, index)
			assert.Len(t, got, len(ids))

			// The moved id appears exactly once.
			count := 0
			for _, v := range got {
				if v == id {
					count++
				}
			}
			assert.Equal(t, 1, count)

			// Everything else keeps its original relative order.
			rest := []string{}
			for _, v := range got {
				if v != id {
					rest = append(rest, v)
				}
			}
			want := []string{}
			for _, v := range ids {
				if v != id {
					want = append(want, v)
				}
			}
			assert.Equal(t, want, rest)
		}
	}
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	ids := []string{"A", "B", "C"}
	_ = reorder(ids, "C", 0)
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}
