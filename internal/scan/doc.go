// Package scan selects marked declarations and resolves them into targets
// for the model builders.
//
// Selection is a cheap syntactic pre-filter: method-shaped declarations that
// carry a marker of the requested kind. Resolution then requires the host
// to have attached a Symbol; what happens to declarations without one is
// governed by an UnresolvedPolicy.
package scan
