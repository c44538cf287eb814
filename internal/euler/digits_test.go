package euler

import (
	"slices"
	"testing"
)

func TestGuardDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		places int
		want   int
	}{
		{1, 2},
		{2, 2},
		{10, 2},
		{11, 4},
		{100, 4},
		{101, 6},
		{5000, 8},
		{100000, 10},
		{1000000, 12},
	}
	for _, tt := range tests {
		if got := GuardDigits(tt.places); got != tt.want {
			t.Errorf("GuardDigits(%d) = %d, want %d", tt.places, got, tt.want)
		}
	}
}

func TestDigitsDivideBy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		in           digits
		n            int
		firstNonZero int
		want         digits
		wantFirst    int
	}{
		{"one half by three", digits{5, 0, 0, 0}, 3, 0, digits{1, 6, 6, 6}, 0},
		{"first digit becomes zero", digits{1, 6, 6, 6}, 4, 0, digits{0, 4, 1, 6}, 1},
		{"cursor skips leading zeros", digits{0, 0, 7, 0}, 7, 2, digits{0, 0, 1, 0}, 2},
		{"underflow keeps cursor", digits{0, 0, 0, 3}, 10, 3, digits{0, 0, 0, 0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := slices.Clone(tt.in)
			first := d.divideBy(tt.n, tt.firstNonZero)
			if !slices.Equal(d, tt.want) {
				t.Errorf("digits = %v, want %v", d, tt.want)
			}
			if first != tt.wantFirst {
				t.Errorf("firstNonZero = %d, want %d", first, tt.wantFirst)
			}
		})
	}
}

func TestDigitsAddFrom(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		acc       digits
		term      digits
		first     int
		want      digits
		wantCarry uint8
	}{
		{"no carry", digits{1, 2, 3}, digits{0, 0, 4}, 2, digits{1, 2, 7}, 0},
		{"carry ripples past cursor", digits{1, 9, 9}, digits{0, 0, 1}, 2, digits{2, 0, 0}, 0},
		{"carry leaves fraction", digits{9, 9, 9}, digits{0, 0, 1}, 2, digits{0, 0, 0}, 1},
		{"full width", digits{5, 0, 0}, digits{1, 6, 6}, 0, digits{6, 6, 6}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			acc := slices.Clone(tt.acc)
			carry := acc.addFrom(tt.term, tt.first)
			if !slices.Equal(acc, tt.want) {
				t.Errorf("sum = %v, want %v", acc, tt.want)
			}
			if carry != tt.wantCarry {
				t.Errorf("carry = %d, want %d", carry, tt.wantCarry)
			}
		})
	}
}

func TestDigitsIncrementAt(t *testing.T) {
	t.Parallel()
	d := digits{3, 9, 9, 4}
	if carry := d.incrementAt(2); carry != 0 {
		t.Errorf("unexpected carry %d", carry)
	}
	if want := (digits{4, 0, 0, 4}); !slices.Equal(d, want) {
		t.Errorf("digits = %v, want %v", d, want)
	}

	d = digits{9, 9}
	if carry := d.incrementAt(1); carry != 1 {
		t.Errorf("carry = %d, want 1", carry)
	}
	if want := (digits{0, 0}); !slices.Equal(d, want) {
		t.Errorf("digits = %v, want %v", d, want)
	}
}

func TestDigitsIsZeroFrom(t *testing.T) {
	t.Parallel()
	d := digits{1, 0, 0}
	if d.isZeroFrom(0) {
		t.Error("expected non-zero from 0")
	}
	if !d.isZeroFrom(1) {
		t.Error("expected zero from 1")
	}
	if !d.isZeroFrom(3) {
		t.Error("an empty suffix is zero")
	}
}

// TestRoundCarryIntoIntegerPart builds a value whose requested digits are all
// nines, so that rounding up carries into the integer part.
func TestRoundCarryIntoIntegerPart(t *testing.T) {
	t.Parallel()
	x := &Number{
		decimalPlaces: 3,
		guardDigits:   2,
		integer:       2,
		accumulator:   digits{9, 9, 9, 5, 1},
		term:          newDigits(5),
	}
	x.Round()
	if got, want := x.String(), "3.000"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !x.accumulator[x.decimalPlaces:].isZeroFrom(0) {
		t.Errorf("guard digits not cleared: %v", x.accumulator)
	}
}

func TestRoundClearsGuardWhenRoundingDown(t *testing.T) {
	t.Parallel()
	x := &Number{
		decimalPlaces: 2,
		guardDigits:   2,
		integer:       2,
		accumulator:   digits{7, 1, 4, 9},
		term:          newDigits(4),
	}
	x.Round()
	if want := (digits{7, 1, 0, 0}); !slices.Equal(x.accumulator, want) {
		t.Errorf("accumulator = %v, want %v", x.accumulator, want)
	}
}
