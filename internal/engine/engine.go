// Package engine implements the D&D 5e session rules used by the tracker:
// spell slot tables and synthesis, short and long rests, damage and healing.
//
// Every function here is total. Out-of-range input is clamped or ignored
// rather than reported, and nothing in this package touches storage or
// presentation. Callers own the character and persist it afterwards.
package engine
