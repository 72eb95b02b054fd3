package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHoles builds n holes of the given par with stroke index i+1 on hole i+1.
func testHoles(n, par int) []Hole {
	holes := make([]Hole, n)
	for i := range holes {
		holes[i] = Hole{Number: i + 1, Par: par, StrokeIndex: i + 1}
	}
	return holes
}

func TestPlayingHandicap(t *testing.T) {
	tests := []struct {
		name  string
		index float64
		want  int
	}{
		{"whole number", 10.0, 10},
		{"rounds down", 12.4, 12},
		{"rounds up", 12.5, 13},
		{"scratch", 0.0, 0},
		{"plus handicap clamps to zero", -2.3, 0},
		{"NaN treated as scratch", math.NaN(), 0},
		{"infinity treated as scratch", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayingHandicap(tt.index))
		})
	}
}

func TestAllocateSumsToHandicap(t *testing.T) {
	holes := testHoles(18, 4)
	for h := 0; h <= 54; h++ {
		allocation := Allocate(h, holes)
		require.Len(t, allocation, 18)
		sum := 0
		for _, a := range allocation {
			sum += a
		}
		assert.Equal(t, h, sum, "allocation for H=%d must sum to H", h)
	}
}

func TestAllocateHardestHolesFirst(t *testing.T) {
	// Stroke indexes deliberately out of hole order: hole 3 is the
	// hardest (index 1), hole 1 the easiest (index 4).
	holes := []Hole{
		{Number: 1, Par: 4, StrokeIndex: 4},
		{Number: 2, Par: 4, StrokeIndex: 2},
		{Number: 3, Par: 4, StrokeIndex: 1},
		{Number: 4, Par: 4, StrokeIndex: 3},
	}

	// Two extra strokes go to the two lowest stroke indexes: holes 3 and 2.
	assert.Equal(t, []int{0, 1, 1, 0}, Allocate(2, holes))

	// H=6 on 4 holes: everyone gets base 1, remainder 2 to holes 3 and 2.
	assert.Equal(t, []int{1, 2, 2, 1}, Allocate(6, holes))
}

func TestAllocateTiesBrokenByHoleOrder(t *testing.T) {
	holes := []Hole{
		{Number: 1, Par: 4, StrokeIndex: 2},
		{Number: 2, Par: 4, StrokeIndex: 2},
		{Number: 3, Par: 4, StrokeIndex: 1},
	}
	// One stroke goes to index 1 (hole 3); the second tie at index 2 is
	// broken by hole order, so hole 1 beats hole 2.
	assert.Equal(t, []int{1, 0, 1}, Allocate(2, holes))
}

func TestAllocateMissingStrokeIndexFallsBackToOrdinal(t *testing.T) {
	holes := []Hole{
		{Number: 1, Par: 4}, // no stroke index assigned
		{Number: 2, Par: 4},
		{Number: 3, Par: 4},
	}
	// Ordinal surrogate ranking: hole 1 is treated as hardest.
	assert.Equal(t, []int{1, 1, 0}, Allocate(2, holes))
}

func TestAllocateEdgeCases(t *testing.T) {
	holes := testHoles(18, 4)

	t.Run("zero handicap", func(t *testing.T) {
		assert.Equal(t, make([]int, 18), Allocate(0, holes))
	})

	t.Run("negative handicap", func(t *testing.T) {
		assert.Equal(t, make([]int, 18), Allocate(-5, holes))
	})

	t.Run("handicap exceeds hole count", func(t *testing.T) {
		allocation := Allocate(36, holes)
		for i, a := range allocation {
			assert.Equal(t, 2, a, "hole %d", i+1)
		}
	})

	t.Run("handicap exceeds hole count with remainder", func(t *testing.T) {
		// H=20 on 18: base 1 everywhere, extras on stroke index 1 and 2.
		allocation := Allocate(20, holes)
		assert.Equal(t, 2, allocation[0])
		assert.Equal(t, 2, allocation[1])
		assert.Equal(t, 1, allocation[2])
	})

	t.Run("no holes", func(t *testing.T) {
		assert.Empty(t, Allocate(10, nil))
	})
}
