package orchestration

// Verification is the outcome of checking an expansion against the
// reference. A mismatch is a normal result, not an error.
type Verification struct {
	// Correct is true when every character matches.
	Correct bool
	// CorrectPrefix is the longest matching leading part.
	CorrectPrefix string
	// CorrectDigits is the number of matching decimal places.
	CorrectDigits int
	// Places is the number of decimal places checked.
	Places int
}

// VerifyResult checks result ("2." followed by digits) with v.
func VerifyResult(v Verifier, result string) (Verification, error) {
	prefix, err := v.FirstCorrectPrefix(result)
	if err != nil {
		return Verification{}, err
	}
	return Verification{
		Correct:       prefix == result,
		CorrectPrefix: prefix,
		CorrectDigits: max(0, len(prefix)-2),
		Places:        max(0, len(result)-2),
	}, nil
}
