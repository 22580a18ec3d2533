// Package diagnostic provides the diagnostic kinds, their descriptors, the
// Outcome result type used by model builders, and the Diagnostics collector
// that surfaces every failure found while generating.
//
// Key capabilities:
//   - Stable identifiers, severities and message templates per Kind
//   - Outcome[T]: a value or the Info describing why it was rejected
//   - Collection that never stops on the first failure
package diagnostic
