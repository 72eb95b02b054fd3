package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStablefordAllNetPars(t *testing.T) {
	holes := testHoles(18, 4)
	raw := make([]HoleScore, 18)
	for i := range raw {
		raw[i] = Played(4)
	}

	// A full round of net pars is worth exactly 2 points per hole played.
	assert.Equal(t, 36, StablefordPoints(holes, raw, nil))
}

func TestStablefordPointTable(t *testing.T) {
	hole := []Hole{{Number: 1, Par: 4, StrokeIndex: 1}}

	tests := []struct {
		name   string
		gross  int
		points int
	}{
		{"albatross", 1, 5},
		{"eagle", 2, 4},
		{"birdie", 3, 3},
		{"par", 4, 2},
		{"bogey", 5, 1},
		{"double bogey", 6, 0},
		{"triple bogey still zero", 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.points, StablefordPoints(hole, []HoleScore{Played(tt.gross)}, nil))
		})
	}
}

func TestStablefordUpperCapIsSix(t *testing.T) {
	// A hole-in-one on a par 6 with a handicap stroke would compute to 8
	// points raw; the platform caps a single hole at 6.
	hole := []Hole{{Number: 1, Par: 6, StrokeIndex: 1}}
	assert.Equal(t, 6, StablefordPoints(hole, []HoleScore{Played(1)}, []int{1}))
}

func TestStablefordHandicapStrokesApply(t *testing.T) {
	hole := []Hole{{Number: 1, Par: 4, StrokeIndex: 1}}
	// Gross bogey with one allocated stroke is a net par: 2 points.
	assert.Equal(t, 2, StablefordPoints(hole, []HoleScore{Played(5)}, []int{1}))
}

func TestStablefordUnplayedHolesContributeZero(t *testing.T) {
	holes := testHoles(3, 4)
	raw := []HoleScore{Played(4), Unplayed(), Played(4)}

	// The skipped hole is worth 0 — it is NOT scored as a blow-up hole.
	assert.Equal(t, 4, StablefordPoints(holes, raw, nil))
}

func TestOverrideOr(t *testing.T) {
	override := 41
	assert.Equal(t, 41, OverrideOr(&override, 36), "override replaces the computed total")
	assert.Equal(t, 36, OverrideOr(nil, 36))

	zero := 0
	assert.Equal(t, 0, OverrideOr(&zero, 36), "an explicit zero override still wins")
}
