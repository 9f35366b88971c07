// Package diagnostic collects the data-quality findings produced while
// loading and checking a catalogue.
//
// Findings are advisory: duplicate factory locations, successor cycles and
// references to companies with no record are reported, never fatal.
package diagnostic
