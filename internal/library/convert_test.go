package library

import "testing"

func TestStarRating(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 0},
		{19, 1},
		{20, 1},
		{40, 2},
		{59, 3},
		{60, 3},
		{80, 4},
		{90, 5},
		{100, 5},
		{120, 5},
		{-20, 0},
	}
	for _, tc := range tests {
		if got := StarRating(tc.raw); got != tc.want {
			t.Errorf("StarRating(%d) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
