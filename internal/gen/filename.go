package gen

import "strings"

var classNameReplacer = strings.NewReplacer("<", "[", ">", "]", " ", "")

// Filename derives the output filename of an extension point's containing
// type: the namespace with dots replaced by underscores followed by an
// underscore (when non-empty), the class name with angle brackets replaced
// by square brackets, and suffix.
//
// Distinct types can map to the same filename; callers detect collisions.
func Filename(namespace, className, suffix string) string {
	var b strings.Builder

	if namespace != "" {
		b.WriteString(strings.ReplaceAll(namespace, ".", "_"))
		b.WriteByte('_')
	}

	b.WriteString(classNameReplacer.Replace(className))
	b.WriteString(suffix)

	return b.String()
}
