// Package logging provides the structured logging interface used by the
// eulercalc components. The default backend is zerolog; a standard library
// adapter is kept for code that only has a *log.Logger.
package logging
