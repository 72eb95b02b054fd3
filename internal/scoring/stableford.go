// stableford.go — points-based scoring where better-than-par holes score
// more and blow-up holes stop hurting once they hit zero points.
package scoring

// StablefordPoints computes a round's Stableford total. For each hole with a
// valid recorded score:
//
//	net      = gross − allocated handicap strokes for that hole
//	netToPar = net − par
//	points   = clamp(2 − netToPar, 0, 6)
//
// so a net par is worth 2, net birdie 3, net bogey 1, and anything worse
// than net double bogey is worth 0. Unplayed holes contribute 0 points and
// are skipped entirely — they are NOT scored as over-par.
//
// Note the upper cap: 6 points (net quadruple-birdie) rather than the 5 the
// traditional Stableford table tops out at. That bound is the platform's
// long-standing behavior and is kept as-is rather than silently "fixed".
func StablefordPoints(holes []Hole, raw []HoleScore, allocation []int) int {
	total := 0
	for i, hole := range holes {
		entry := at(raw, i)
		if !entry.Valid() {
			continue
		}
		net := entry.Strokes - allocAt(allocation, i)
		netToPar := net - hole.Par
		total += clampPoints(2 - netToPar)
	}
	return total
}

// OverrideOr applies a manual Stableford override: organizers can enter a
// final point total directly (paper scorecards, rulings), and when present
// it replaces the computed total for the round entirely.
func OverrideOr(override *int, computed int) int {
	if override != nil {
		return *override
	}
	return computed
}

func clampPoints(p int) int {
	if p < 0 {
		return 0
	}
	if p > 6 {
		return 6
	}
	return p
}
