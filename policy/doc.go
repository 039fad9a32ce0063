// Package policy holds the tunable parts of the scheduling policy: the
// round-robin time slice and the priority range used by aging. The zero-cost
// default is Default(), which reproduces the classic two-tick quantum over the
// -20..19 priority range.
package policy
