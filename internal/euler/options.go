package euler

// Options configures an e calculation.
type Options struct {
	// Round requests the expansion rounded half-up to the requested number of
	// decimal places. When false the expansion is truncated, which is the form
	// the reference data uses.
	Round bool
	// ExtraGuardDigits adds working digits on top of GuardDigits(places).
	// Negative values are rejected.
	ExtraGuardDigits int
}

// guardFor returns the total number of guard digits used for places.
func (o Options) guardFor(places int) int {
	return GuardDigits(places) + max(0, o.ExtraGuardDigits)
}
