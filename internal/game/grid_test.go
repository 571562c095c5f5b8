package game

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected int
	}{
		{"same cell", Point{3, 3}, Point{3, 3}, 0},
		{"horizontal neighbor", Point{3, 3}, Point{4, 3}, 1},
		{"vertical neighbor", Point{3, 3}, Point{3, 2}, 1},
		{"diagonal neighbor is two", Point{3, 3}, Point{4, 4}, 2},
		{"manhattan not euclidean", Point{0, 0}, Point{3, 4}, 7},
		{"negative coordinates", Point{-2, 1}, Point{1, -1}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if d := Distance(tc.a, tc.b); d != tc.expected {
				t.Errorf("Distance(%v, %v) = %d, expected %d", tc.a, tc.b, d, tc.expected)
			}
			// Also test symmetry
			if d := Distance(tc.b, tc.a); d != tc.expected {
				t.Errorf("Distance(%v, %v) (reversed) = %d, expected %d", tc.b, tc.a, d, tc.expected)
			}
		})
	}
}

func TestDirectionTurn(t *testing.T) {
	tests := []struct {
		name     string
		facing   Direction
		rel      RelativeDirection
		expected Direction
	}{
		{"north forward", North, Forward, North},
		{"north right", North, Right, East},
		{"north backward", North, Backward, South},
		{"north left", North, Left, West},
		{"west right wraps", West, Right, North},
		{"east backward", East, Backward, West},
		{"south left", South, Left, East},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.facing.Turn(tc.rel); got != tc.expected {
				t.Errorf("%v.Turn(%v) = %v, expected %v", tc.facing, tc.rel, got, tc.expected)
			}
		})
	}
}

func TestDirectionRelativeTo(t *testing.T) {
	// RelativeTo inverts Turn for every facing/token pair.
	for d := North; d <= West; d++ {
		for r := Forward; r <= Left; r++ {
			abs := d.Turn(r)
			if got := d.RelativeTo(abs); got != r {
				t.Errorf("%v.RelativeTo(%v) = %v, expected %v", d, abs, got, r)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("south"); err != nil || d != South {
		t.Errorf("ParseDirection(south) = %v, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up) should fail")
	}
	if r, err := ParseRelativeDirection("backward"); err != nil || r != Backward {
		t.Errorf("ParseRelativeDirection(backward) = %v, %v", r, err)
	}
	if _, err := ParseRelativeDirection("behind"); err == nil {
		t.Error("ParseRelativeDirection(behind) should fail")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		North: South,
		East:  West,
		South: North,
		West:  East,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, expected %v", d, got, want)
		}
	}
}
