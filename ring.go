package chord

// InRange reports whether x lies on the arc travelling clockwise from low to
// high in a ring of size 2^m, with each endpoint included or excluded
// according to openLow/closedHigh.
//
// It handles the wrap-around case (low >= high) as the union of (low, 2^m)
// and [0, high), respecting the endpoint flags on each side.
func InRange(openLow bool, low, x, high uint64, closedHigh bool) bool {
	if low == high {
		// Degenerate case: low and high are the same point, meaning the
		// arc spans the whole ring exactly once around. A closed high
		// endpoint absorbs that point into the arc, so everything
		// qualifies; otherwise the arc is the ring minus that one point.
		if closedHigh {
			return true
		}
		return x != low
	}

	lowOK := func() bool {
		if openLow {
			return x > low
		}
		return x >= low
	}
	highOK := func() bool {
		if closedHigh {
			return x <= high
		}
		return x < high
	}

	if low < high {
		return lowOK() && highOK()
	}

	// wraps: arc is (low, 2^m) union [0, high), endpoint flags apply to
	// the low/high ends of the whole arc, not to the internal split at 0.
	return lowOK() || highOK()
}
