// Package orchestration runs e calculations concurrently, compares the
// algorithms' results, checks them against the reference expansion and
// drives precision sweeps. Presentation is reached only through the
// ProgressReporter, ResultPresenter and SweepObserver interfaces.
package orchestration
