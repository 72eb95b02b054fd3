package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, total int, net *int) Entry {
	return Entry{ID: uuid.New(), Name: name, TotalScore: total, NetScore: net}
}

func intp(n int) *int { return &n }

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRankAscendingByGross(t *testing.T) {
	ranked := Rank([]Entry{
		entry("carol", 80, nil),
		entry("alice", 72, nil),
		entry("bob", 75, nil),
	})

	assert.Equal(t, []string{"alice", "bob", "carol"}, names(ranked))
	for i, e := range ranked {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestRankPrefersNetWhenPresent(t *testing.T) {
	// dave shot a higher gross but his net 70 beats alice's gross 72.
	ranked := Rank([]Entry{
		entry("alice", 72, nil),
		entry("dave", 84, intp(70)),
	})

	assert.Equal(t, []string{"dave", "alice"}, names(ranked))
}

func TestRankNoScoreAlwaysLast(t *testing.T) {
	ranked := Rank([]Entry{
		entry("idle1", 0, nil),
		entry("alice", 90, nil),
		entry("idle2", 0, nil),
		entry("bob", 72, nil),
	})

	require.Equal(t, []string{"bob", "alice", "idle1", "idle2"}, names(ranked))

	// Unscored entries keep their relative input order and still get
	// sequential positions.
	assert.Equal(t, 3, ranked[2].Position)
	assert.Equal(t, 4, ranked[3].Position)
}

func TestRankTiesGetDistinctConsecutivePositions(t *testing.T) {
	ranked := Rank([]Entry{
		entry("first-in", 72, nil),
		entry("second-in", 72, nil),
		entry("third", 75, nil),
	})

	// No tie-grouping: equal scores rank in input order with distinct
	// positions, never a shared "T1".
	assert.Equal(t, []string{"first-in", "second-in", "third"}, names(ranked))
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Position, ranked[1].Position, ranked[2].Position})
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []Entry{
		entry("b", 80, nil),
		entry("a", 72, nil),
	}
	Rank(in)
	assert.Equal(t, "b", in[0].Name, "input order untouched")
	assert.Zero(t, in[0].Position)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
