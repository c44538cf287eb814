package euler

// base10 is the radix of a single digit cell.
const base10 = 10

// digits is a fixed-capacity fractional decimal, most significant digit
// first: digits{7, 1} is 0.71. Its length is set once at allocation and never
// changes afterwards.
type digits []uint8

// newDigits allocates a zero value with room for n fractional digits.
func newDigits(n int) digits {
	return make(digits, n)
}

// isZeroFrom reports whether every digit from position start onward is zero.
func (d digits) isZeroFrom(start int) bool {
	for i := start; i < len(d); i++ {
		if d[i] != 0 {
			return false
		}
	}
	return true
}

// divideBy performs long division by a small positive integer in place,
// starting at firstNonZero (all earlier positions must already be zero). It
// returns the position of the first non-zero quotient digit, or firstNonZero
// unchanged when the quotient is all zeros.
func (d digits) divideBy(n, firstNonZero int) int {
	remainder := 0
	found := false
	for i := firstNonZero; i < len(d); i++ {
		current := remainder*base10 + int(d[i])
		d[i] = uint8(current / n)
		remainder = current % n

		if !found && d[i] != 0 {
			found = true
			firstNonZero = i
		}
	}
	return firstNonZero
}

// addFrom adds term into d, from the least significant digit towards the
// most significant one. Digits of term before firstNonZero must be zero; the
// scan only passes that position while a carry is still pending. The returned
// carry is non-zero when the sum overflowed out of the first fractional digit.
func (d digits) addFrom(term digits, firstNonZero int) uint8 {
	var carry uint8
	for i := len(d) - 1; i >= 0 && (i >= firstNonZero || carry != 0); i-- {
		sum := d[i] + term[i] + carry
		if sum >= base10 {
			d[i] = sum - base10
			carry = 1
		} else {
			d[i] = sum
			carry = 0
		}
	}
	return carry
}

// incrementAt adds one unit at position pos, propagating the carry towards
// the most significant digit. It returns 1 when the carry leaves the
// fractional part.
func (d digits) incrementAt(pos int) uint8 {
	for i := pos; i >= 0; i-- {
		if d[i] < base10-1 {
			d[i]++
			return 0
		}
		d[i] = 0
	}
	return 1
}

// GuardDigits returns the number of extra low-order digits carried beyond
// decimalPlaces: twice ceil(log10(decimalPlaces)), and never fewer than two.
// The summation adds one truncated term per iteration, and the number of
// iterations stays well below 10^(guard/2), so the accumulated truncation
// error never reaches the last requested digit.
func GuardDigits(decimalPlaces int) int {
	exponent := 0
	for power := 1; power < decimalPlaces; power *= base10 {
		exponent++
	}
	return 2 * max(1, exponent)
}
