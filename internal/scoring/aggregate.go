// aggregate.go — turning one player's raw hole scores into round totals.
package scoring

// Summary is the derived scoring record for one round: gross totals always,
// net totals only when handicap strokes were actually applied.
//
// NetScore/NetToPar are pointers so that "no handicap" is distinguishable
// from a net score that happens to be zero. Downstream consumers (the
// leaderboard sorter, the API responses) treat nil as "use gross".
type Summary struct {
	TotalScore      int  // Sum of strokes over played holes only
	TotalToPar      int  // TotalScore minus the par of those same holes
	HolesPlayed     int  // How many holes have a valid recorded score
	HandicapStrokes int  // Allocated strokes summed over played holes only
	NetScore        *int // TotalScore − HandicapStrokes; nil when no strokes applied
	NetToPar        *int // TotalToPar − HandicapStrokes; nil when no strokes applied
}

// Aggregate computes a player's round summary from the course holes, the raw
// per-hole score array, and the handicap allocation (pass nil when the round
// does not give strokes).
//
// Unplayed holes are excluded from BOTH sides of the to-par calculation:
// they contribute neither strokes to the total nor par to the denominator.
// They are not zero, and they are not penalized — a player who recorded nine
// pars and skipped the back nine is simply even through nine. Handicap
// strokes likewise only count on holes that were actually played, so an
// unfinished round never banks strokes for holes never attempted.
//
// The derived record is always recomputed wholesale from the raw array —
// callers never patch totals incrementally — so a Summary is consistent by
// construction no matter how many times individual holes were corrected.
func Aggregate(holes []Hole, raw []HoleScore, allocation []int) Summary {
	var s Summary

	for i, hole := range holes {
		entry := at(raw, i)
		if !entry.Valid() {
			continue
		}
		s.HolesPlayed++
		s.TotalScore += entry.Strokes
		s.TotalToPar += entry.Strokes - hole.Par
		s.HandicapStrokes += allocAt(allocation, i)
	}

	// Net fields are only populated when strokes were actually received —
	// a nil net tells the leaderboard to rank this entry by gross score.
	if s.HandicapStrokes > 0 {
		net := s.TotalScore - s.HandicapStrokes
		netToPar := s.TotalToPar - s.HandicapStrokes
		s.NetScore = &net
		s.NetToPar = &netToPar
	}

	return s
}
