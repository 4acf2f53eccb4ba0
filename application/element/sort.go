package element

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"storefront_automation/domain/entities"
)

// Order is the direction a rendered list is expected to be sorted in
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// DateLayouts are tried in turn on rendered dates once punctuation has been
// stripped, e.g. "Oct 19, 2026" -> "Oct 19 2026" and "October 19 2026"
var DateLayouts = []string{"Jan 2 2006", "January 2 2006"}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// IsStringSorted - reports whether the texts of the elements matching loc
// are in lexical order
func (a *Actions) IsStringSorted(loc entities.ResolvedLocator, order Order) (bool, error) {
	values, err := a.texts(loc)
	if err != nil {
		return false, err
	}
	return StringsSorted(values, order), nil
}

// IsFloatSorted - like IsStringSorted but compares the numeric part of
// each text, so "$1,200.00" reads as 1200
func (a *Actions) IsFloatSorted(loc entities.ResolvedLocator, order Order) (bool, error) {
	values, err := a.texts(loc)
	if err != nil {
		return false, err
	}
	numbers, err := ParseFloats(values)
	if err != nil {
		return false, fmt.Errorf("%s: %w", loc, err)
	}
	return FloatsSorted(numbers, order), nil
}

// IsDateSorted compares the texts as dates. Unreadable dates compare as nil
// and sort first; the result is still computed and the parse failures are
// returned alongside it.
func (a *Actions) IsDateSorted(loc entities.ResolvedLocator, order Order) (bool, error) {
	values, err := a.texts(loc)
	if err != nil {
		return false, err
	}
	dates, perr := ParseDates(values)
	return DatesSorted(dates, order), perr
}

func StringsSorted(values []string, order Order) bool {
	if order == Descending {
		return slices.IsSortedFunc(values, func(a, b string) int { return strings.Compare(b, a) })
	}
	return slices.IsSorted(values)
}

func FloatsSorted(values []float64, order Order) bool {
	if order == Descending {
		return slices.IsSortedFunc(values, func(a, b float64) int { return compareFloat(b, a) })
	}
	return slices.IsSortedFunc(values, compareFloat)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseFloats - strips everything but digits, dots and minus signs from
// each value and parses the rest
func ParseFloats(values []string) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		cleaned := nonNumeric.ReplaceAllString(v, "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q as number: %w", v, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// ParseDates reads each value with the first of DateLayouts that fits. A
// value that cannot be read yields nil at its position and a
// *entities.DateParseError in the joined error.
func ParseDates(values []string) ([]*time.Time, error) {
	out := make([]*time.Time, len(values))
	var errs []error
	for i, v := range values {
		t, err := parseDate(normalizeDate(v))
		if err != nil {
			errs = append(errs, &entities.DateParseError{Value: v, Err: err})
			continue
		}
		out[i] = &t
	}
	return out, errors.Join(errs...)
}

// parseDate reports the error of the first layout when none fits
func parseDate(v string) (time.Time, error) {
	var first error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, first
}

func normalizeDate(v string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, v)
	return strings.Join(strings.Fields(cleaned), " ")
}

// DatesSorted orders nil before every date, so unreadable values sort first
func DatesSorted(values []*time.Time, order Order) bool {
	if order == Descending {
		return slices.IsSortedFunc(values, func(a, b *time.Time) int { return compareDate(b, a) })
	}
	return slices.IsSortedFunc(values, compareDate)
}

func compareDate(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
