// Package csharp turns C# source files into declaration records.
//
// Files are parsed with tree-sitter. The frontend is purely syntactic: it
// resolves type and attribute names only against using directives, aliases
// and enclosing namespaces, and only to the fully-qualified names it was told
// about (the contract types and marker attributes). Anything else keeps the
// spelling found in the source, which the model builders then reject.
//
// A method whose syntax contains errors, or that sits outside any type, is
// recorded without a Symbol.
package csharp
