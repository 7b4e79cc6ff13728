package chord

import "testing"

func TestInRange(t *testing.T) {
	tests := []struct {
		name      string
		openLow   bool
		low       uint64
		x         uint64
		high      uint64
		closedHigh bool
		expected  bool
	}{
		{"normal range inclusive both", false, 3, 5, 7, true, true},
		{"low excluded, x equals low", true, 3, 3, 7, true, false},
		{"low included, x equals low", false, 3, 3, 7, true, true},
		{"high included, x equals high", true, 3, 7, 7, true, true},
		{"high excluded, x equals high", true, 3, 7, 7, false, false},
		{"outside range", false, 3, 10, 7, true, false},
		{"wraparound, x after low", true, 8, 9, 3, true, true},
		{"wraparound, x before high", true, 8, 1, 3, true, true},
		{"wraparound, x at high inclusive", true, 8, 3, 3, true, false},
		{"wraparound, x not in arc", true, 8, 5, 3, true, false},
		{"low equals high, closed high absorbs whole ring", false, 5, 9, 5, true, true},
		{"low equals high, open high excludes only the point itself", true, 5, 5, 5, false, false},
		{"low equals high, open high includes everything else", true, 5, 9, 5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InRange(tt.openLow, tt.low, tt.x, tt.high, tt.closedHigh)
			if got != tt.expected {
				t.Errorf("InRange(%v, %d, %d, %d, %v) = %v, want %v",
					tt.openLow, tt.low, tt.x, tt.high, tt.closedHigh, got, tt.expected)
			}
		})
	}
}
