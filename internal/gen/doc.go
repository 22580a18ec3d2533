// Package gen renders completed extension points as C# source files.
//
// Generation uses text/template over a precomputed templateData so that the
// output is a pure function of the groups being rendered.
//
// Each file completes the extension points of one type and contains:
//   - The auto-generated header and a nullable opt-in
//   - An optional namespace block
//   - A partial class or struct with one completed stub per extension point
//   - In each stub, one profile scope calling every fragment in discovery order
package gen
