// Package reference provides the known decimal expansion of e used to check
// computed results.
//
// The expansion is read from a line-oriented text resource: once line breaks
// are removed it is "2." followed by the fractional digits. The bundled copy
// (EmbeddedSource) holds 1,000,000 decimal places; FileSource reads a control
// file from disk instead. An Oracle reads a Source lazily and caches the
// longest prefix seen so far.
package reference
