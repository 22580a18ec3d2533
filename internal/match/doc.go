// Package match ranks near-miss names. It is used to suggest the profile a
// fragment most likely meant when its own profile matches no extension
// point.
package match
