package euler

import (
	"math"
	"math/big"
	"strings"
)

// renderScaled formats floor(e * 10^fracLen), given as its decimal string,
// with places fractional digits. fracLen must exceed places; the extra digits
// act as guard digits and are used for half-up rounding when round is set.
func renderScaled(scaled string, fracLen, places int, round bool) string {
	intLen := len(scaled) - fracLen
	kept := scaled[:intLen+places]
	if round && scaled[intLen+places] >= '0'+base10/2 {
		v, _ := new(big.Int).SetString(kept, 10)
		kept = v.Add(v, big.NewInt(1)).String()
		intLen = len(kept) - places
	}

	var b strings.Builder
	b.Grow(len(kept) + 1)
	b.WriteString(kept[:intLen])
	b.WriteByte('.')
	b.WriteString(kept[intLen:])
	return b.String()
}

// termsFor returns the smallest K such that K! exceeds 10^digits, so that
// the tail of the series after 1/K! is below one unit of the last digit.
func termsFor(digits int) int64 {
	var log10Factorial float64
	k := int64(1)
	for log10Factorial <= float64(digits)+1 {
		k++
		log10Factorial += math.Log10(float64(k))
	}
	return k
}
