// Package pipeline runs the whole generator over a set of declarations:
// scan, build, group, emit and report.
//
// Run is a pure function of its inputs. The same declarations and Config
// always produce byte-identical files and identical diagnostics, which lets
// hosts run it in parallel over independent inputs and memoize results.
package pipeline
