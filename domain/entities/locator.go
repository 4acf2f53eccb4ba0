package entities

import (
	"fmt"
	"strings"
)

// LocatorTemplate is an XPath pattern with zero or more %s placeholders
type LocatorTemplate string

// ResolvedLocator is a concrete XPath expression ready to be sent to the driver
type ResolvedLocator string

// String - returns the raw expression
func (l ResolvedLocator) String() string {
	return string(l)
}

// Child - appends a relative path step to the locator
func (l ResolvedLocator) Child(step string) ResolvedLocator {
	return ResolvedLocator(string(l) + step)
}

// Placeholders - counts the %s verbs in the template, skipping %% escapes.
// Any other verb is reported as an error.
func (t LocatorTemplate) Placeholders() (int, error) {
	s := string(t)
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+1 >= len(s) {
			return 0, fmt.Errorf("dangling %% at end of template")
		}
		switch s[i+1] {
		case '%':
		case 's':
			count++
		default:
			return 0, fmt.Errorf("unsupported verb %%%c at offset %d", s[i+1], i)
		}
		i++
	}
	return count, nil
}

// Resolve - substitutes args into the template positionally
func (t LocatorTemplate) Resolve(args ...string) (ResolvedLocator, error) {
	want, err := t.Placeholders()
	if err != nil {
		return "", &FormatError{Template: string(t), Args: len(args), Err: err}
	}
	if want != len(args) {
		return "", &FormatError{Template: string(t), Placeholders: want, Args: len(args)}
	}
	if want == 0 {
		return ResolvedLocator(strings.ReplaceAll(string(t), "%%", "%")), nil
	}

	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a
	}
	return ResolvedLocator(fmt.Sprintf(string(t), values...)), nil
}

// MustResolve - like Resolve but panics with *FormatError on mismatch.
// Used for locator tables whose arity is fixed at compile time.
func (t LocatorTemplate) MustResolve(args ...string) ResolvedLocator {
	loc, err := t.Resolve(args...)
	if err != nil {
		panic(err)
	}
	return loc
}
