// leaderboard.go — ranking scored entities (players or teams) into a
// positioned leaderboard.
package scoring

import (
	"sort"

	"github.com/google/uuid"
)

// Entry is one row on a leaderboard. The same shape serves both individual
// and team leaderboards — the sorter only cares about the score fields.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalScore int       `json:"total_score"`
	TotalToPar int       `json:"total_to_par"`
	NetScore   *int      `json:"net_score"`   // nil = no handicap applied; rank by gross
	NetToPar   *int      `json:"net_to_par"`  // nil = no handicap applied
	Points     *int      `json:"points"`      // Stableford total when the format uses it
	Position   int       `json:"position"`    // 1-based; assigned by Rank
}

// sortKey is the value an entry is ranked on: net score when a handicap was
// applied, gross score otherwise. A nil net means "use gross", never zero.
func (e Entry) sortKey() int {
	if e.NetScore != nil {
		return *e.NetScore
	}
	return e.TotalScore
}

// Rank sorts entries into leaderboard order and assigns positions 1..K.
//
// Rules:
//   - Entries with TotalScore == 0 (nothing posted yet) always sort after
//     every entry with a real score, keeping their relative input order —
//     players who haven't teed off sit at the bottom in sign-up order.
//   - Scored entries sort ascending by net score when present, else gross.
//   - The sort is stable and exact ties get consecutive, distinct positions
//     (input order decides who is listed first). There is deliberately no
//     tie-grouping: two players on 72 show as positions 3 and 4, not T3.
//
// The input slice is not modified; a new ranked slice is returned.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(a, b int) bool {
		ea, eb := ranked[a], ranked[b]
		aScored := ea.TotalScore > 0
		bScored := eb.TotalScore > 0
		if aScored != bScored {
			return aScored // scored entries come first
		}
		if !aScored {
			return false // both unscored: stable sort keeps input order
		}
		return ea.sortKey() < eb.sortKey()
	})

	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
