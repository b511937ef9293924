// Package flows contains the engine's state-machine logic, expressed as
// dependency-struct runners so the sequencing can be exercised without root
// package imports. Each runner returns a typed failure kind naming the exact
// internal cause; the root package decides how much of that cause is allowed
// to reach callers.
package flows
