package decl

import (
	"fmt"
	"strings"

	"fragment-generator/internal/common"
)

// Accessibility is the declared accessibility of a member.
type Accessibility int

const (
	AccessibilityNotApplicable Accessibility = iota
	AccessibilityPrivate
	AccessibilityPrivateProtected
	AccessibilityProtected
	AccessibilityInternal
	AccessibilityProtectedInternal
	AccessibilityPublic
)

var accessibilityKeywords = map[Accessibility]string{
	AccessibilityPrivate:           "private",
	AccessibilityPrivateProtected:  "private protected",
	AccessibilityProtected:         "protected",
	AccessibilityInternal:          "internal",
	AccessibilityProtectedInternal: "protected internal",
	AccessibilityPublic:            "public",
}

// Keyword returns the modifier text, or "" for AccessibilityNotApplicable.
func (a Accessibility) Keyword() string {
	return accessibilityKeywords[a]
}

// String returns the modifier text or "unknown".
func (a Accessibility) String() string {
	if kw := a.Keyword(); kw != "" {
		return kw
	}

	return common.UnknownStr
}

// MarshalText implements encoding.TextMarshaler.
func (a Accessibility) MarshalText() ([]byte, error) {
	if a == AccessibilityNotApplicable {
		return []byte{}, nil
	}

	kw := a.Keyword()
	if kw == "" {
		return nil, fmt.Errorf("invalid accessibility %d", int(a))
	}

	return []byte(kw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Hyphens and repeated
// whitespace are accepted between words ("protected-internal").
func (a *Accessibility) UnmarshalText(text []byte) error {
	norm := strings.Join(strings.Fields(strings.ReplaceAll(string(text), "-", " ")), " ")
	if norm == "" {
		*a = AccessibilityNotApplicable
		return nil
	}

	acc, ok := ParseAccessibility(strings.Fields(norm))
	if !ok {
		return fmt.Errorf("unknown accessibility %q", string(text))
	}

	*a = acc

	return nil
}

// ParseAccessibility maps a set of modifier keywords to an Accessibility.
// Keywords other than the four access modifiers are ignored; ok is false when
// the combination is not a valid accessibility.
func ParseAccessibility(modifiers []string) (Accessibility, bool) {
	var public, protected, internal, private bool

	for _, m := range modifiers {
		switch m {
		case "public":
			public = true
		case "protected":
			protected = true
		case "internal":
			internal = true
		case "private":
			private = true
		}
	}

	switch {
	case public && !protected && !internal && !private:
		return AccessibilityPublic, true
	case protected && internal && !public && !private:
		return AccessibilityProtectedInternal, true
	case private && protected && !public && !internal:
		return AccessibilityPrivateProtected, true
	case protected && !public && !internal && !private:
		return AccessibilityProtected, true
	case internal && !public && !protected && !private:
		return AccessibilityInternal, true
	case private && !public && !protected && !internal:
		return AccessibilityPrivate, true
	default:
		return AccessibilityNotApplicable, false
	}
}
