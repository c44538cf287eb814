package euler

// ─────────────────────────────────────────────────────────────────────────────
// Engine Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// CancellationCheckInterval is the number of series terms summed between
	// two context checks in the digit-array engine. Each term costs O(D) digit
	// operations, so 64 keeps the check overhead negligible while still
	// reacting to a timeout within a few milliseconds at 100,000 places.
	CancellationCheckInterval = 64

	// ProgressReportThreshold is the minimum progress increase (1%) between
	// two progress reports.
	ProgressReportThreshold = 0.01

	// MaxDecimalPlaces bounds the precision accepted by the calculators.
	// The bundled reference holds one million decimal places.
	MaxDecimalPlaces = 10_000_000
)

// ─────────────────────────────────────────────────────────────────────────────
// Binary Splitting Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// SplitCancellationSpan is the smallest term range for which the binary
	// splitting recursion checks the context before descending.
	SplitCancellationSpan = 1024
)
