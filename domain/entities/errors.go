package entities

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors reported by driver adapters
var (
	ErrNoSuchElement = errors.New("no such element")
	ErrStaleElement  = errors.New("stale element reference")
	ErrNoAlert       = errors.New("no such alert")
	ErrTimeout       = errors.New("wait timed out")
	ErrDateParse     = errors.New("date parse failed")
)

// FormatError reports a locator template used with the wrong number of arguments
type FormatError struct {
	Template     string
	Placeholders int
	Args         int
	Err          error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locator %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("locator %q expects %d argument(s), got %d", e.Template, e.Placeholders, e.Args)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a readiness condition that never held within its bound
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
	Elapsed   time.Duration
	// Last is the last error observed while polling, if any
	Last error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s (limit %s)", e.Elapsed.Round(time.Millisecond), e.Condition, e.Timeout)
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// DriverError reports an operation rejected by the browser session
type DriverError struct {
	Op      string
	Locator ResolvedLocator
	Err     error
}

func (e *DriverError) Error() string {
	if e.Locator != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// DateParseError reports a rendered value that could not be read as a date
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as date: %v", e.Value, e.Err)
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// Driverf - wraps err as a DriverError unless it is already one
func Driverf(op string, loc ResolvedLocator, err error) error {
	if err == nil {
		return nil
	}
	var de *DriverError
	if errors.As(err, &de) {
		return err
	}
	return &DriverError{Op: op, Locator: loc, Err: err}
}
