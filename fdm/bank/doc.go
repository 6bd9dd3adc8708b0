// Package bank applies the four-slot filter bank that carves a full-range
// signal into the frequency regions each carrier will transport.
//
// A Bank is built for a fixed sample rate from four slot specifications and
// validates every filter design up front, so Apply cannot fail on design
// grounds. Apply filters the four channels concurrently; inputs are never
// mutated and output length equals input length exactly.
package bank
