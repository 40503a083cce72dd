// Package lang holds the target-language options offered to the user.
//
// The list is what the selector shows; it is not a whitelist. Any string
// passed through to the analysis API is forwarded unchanged.
package lang

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Default is the option selected when nothing else is configured.
const Default = "en"

type Option struct {
	Code string
	Name string
	// Native is the language's name in itself, e.g. "हिन्दी" for hi.
	Native string
}

var codes = []string{
	"en", "hi", "bn", "ta", "te", "mr", "gu", "kn", "ml", "pa", "ur",
	"es", "fr", "de",
}

// Options returns the selector entries in display order.
func Options() []Option {
	namer := display.English.Tags()

	opts := make([]Option, 0, len(codes))
	for _, code := range codes {
		tag := language.MustParse(code)
		opts = append(opts, Option{
			Code:   code,
			Name:   namer.Name(tag),
			Native: display.Self.Name(tag),
		})
	}
	return opts
}

// Index returns the position of code in Options, or -1.
func Index(code string) int {
	for i, c := range codes {
		if c == code {
			return i
		}
	}
	return -1
}

// Label returns a human-readable label for code, falling back to code itself
// for values outside the known options.
func Label(code string) string {
	if i := Index(code); i >= 0 {
		return Options()[i].Name
	}
	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	return code
}
