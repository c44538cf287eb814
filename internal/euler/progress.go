package euler

// ProgressUpdate carries the progress of one calculator to the presentation
// layer. It is sent over a channel so several calculators can report
// concurrently.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator instance.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback used by core algorithms to report
// normalized progress (0.0 to 1.0) without knowing how it is displayed.
type ProgressReporter func(progress float64)
