package engine

// overlaps reports whether the half-open minute ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Adapted from the teacher's OverlapDetector
// (core/usecases/common/overlap_detector), rewritten over integer minutes
// on the 15-minute grid instead of time.Time, since every range here lives
// on a single calendar day already resolved by the caller.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// touches reports whether two ranges are directly adjoining: one's end
// equals the other's start, with no gap and no overlap.
func touches(aStart, aEnd, bStart, bEnd int) bool {
	return aEnd == bStart || bEnd == aStart
}

// gapMinutes returns the idle gap between two disjoint ranges (negative if
// they overlap). Assumes aStart <= bStart is not required; it compares both
// orderings.
func gapMinutes(aStart, aEnd, bStart, bEnd int) int {
	if aEnd <= bStart {
		return bStart - aEnd
	}
	return aStart - bEnd
}

// interval is a half-open minute range [Start, End).
type interval struct {
	Start int
	End   int
}

// subtractAll removes every range in cuts from base, returning the
// remaining sorted, merged, disjoint sub-intervals. Used by the coverage-gap
// scan (§4.4) to subtract callouts and scheduled entries from the operating
// window.
func subtractAll(base interval, cuts []interval) []interval {
	remaining := []interval{base}
	for _, cut := range cuts {
		var next []interval
		for _, r := range remaining {
			next = append(next, subtractOne(r, cut)...)
		}
		remaining = next
	}
	return remaining
}

func subtractOne(base, cut interval) []interval {
	if cut.End <= base.Start || cut.Start >= base.End {
		return []interval{base}
	}
	var out []interval
	if cut.Start > base.Start {
		out = append(out, interval{Start: base.Start, End: cut.Start})
	}
	if cut.End < base.End {
		out = append(out, interval{Start: cut.End, End: base.End})
	}
	return out
}
