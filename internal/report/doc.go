// Package report renders diagnostics and profile tables for the terminal or
// for machines.
package report
