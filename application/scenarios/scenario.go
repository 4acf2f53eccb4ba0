// Package scenarios holds the end-to-end flows run against the storefront and
// the runner that executes them, one browser session per scenario.
package scenarios

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront_automation/application/pages"
	"storefront_automation/domain/interfaces"
)

// ErrSkipped marks a scenario whose preconditions are not met
var ErrSkipped = errors.New("scenario skipped")

// Skipf - returns an error that makes the runner record the scenario as skipped
func Skipf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSkipped, fmt.Sprintf(format, args...))
}

// Scenario is one end-to-end flow
type Scenario struct {
	Name        string
	Description string
	// DependsOn names a scenario that must finish first. The dependent is
	// skipped when it did not pass; a dependency outside the run is ignored.
	DependsOn string
	Run       func(ctx context.Context, env *Env) error
}

// Env is what a scenario body works with
type Env struct {
	*pages.Toolkit
	Storage interfaces.Storage
	Log     *logrus.Entry

	steps []string
}

// Step - records and logs a named step of the scenario
func (e *Env) Step(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	e.steps = append(e.steps, msg)
	e.Log.Info(msg)
}

// Steps - returns the steps recorded so far
func (e *Env) Steps() []string {
	return append([]string(nil), e.steps...)
}

// Expect - fails with a descriptive error when got differs from want
func Expect[T comparable](what string, got, want T) error {
	if got != want {
		return fmt.Errorf("%s: expected %v, got %v", what, want, got)
	}
	return nil
}

// Select - picks scenarios by name, keeping catalog order. No names selects all.
func Select(all []Scenario, names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}
	var unknown []string
	for _, n := range names {
		if !slices.ContainsFunc(all, func(s Scenario) bool { return s.Name == n }) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown scenario(s): %s", strings.Join(unknown, ", "))
	}

	var picked []Scenario
	for _, s := range all {
		if slices.Contains(names, s.Name) {
			picked = append(picked, s)
		}
	}
	return picked, nil
}

// order - moves every scenario behind the dependency it names, otherwise
// keeping the given order. Cycles are rejected.
func order(list []Scenario) ([]Scenario, error) {
	index := make(map[string]int, len(list))
	for i, s := range list {
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", s.Name)
		}
		index[s.Name] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(list))
	out := make([]Scenario, 0, len(list))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle through %q", list[i].Name)
		}
		state[i] = visiting
		if dep, ok := index[list[i].DependsOn]; ok && list[i].DependsOn != "" {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[i] = done
		out = append(out, list[i])
		return nil
	}

	for i := range list {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}
