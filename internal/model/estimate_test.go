package model

import "testing"

func TestClampHours(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{-1, 0},
		{0, 0},
		{1, 1},
		{40, 40},
	}
	for _, c := range cases {
		if got := ClampHours(c.in); got != c.want {
			t.Fatalf("ClampHours(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
