// Package model validates scanned targets and extracts the immutable models
// the emitter works from.
//
// Two builders share one Builder value:
//   - ExtensionPoint: partial static extension stubs to be completed
//   - Fragment: static configuration methods invoked from a completed stub
//
// Each rule is checked in order and the first failing rule decides the
// diagnostic. Builders never return Go errors.
package model
