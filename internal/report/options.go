package report

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Format selects how diagnostics are printed.
type Format string

const (
	// FormatPretty prints colored, multi-line diagnostics with suggestions.
	FormatPretty Format = "pretty"
	// FormatShort prints one line per diagnostic.
	FormatShort Format = "short"
	// FormatJSON prints a single JSON document.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPretty, FormatShort, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want pretty, short or json)", s)
	}
}

// Options configures rendering.
type Options struct {
	Format Format
	Color  bool
	// Quiet suppresses infos in pretty and short output.
	Quiet bool
}

// ResolveColor interprets a --color value. "auto" enables color when f is a
// terminal and NO_COLOR is unset.
func ResolveColor(mode string, f *os.File) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}

		return f != nil && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
	}
}
