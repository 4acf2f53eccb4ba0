package wait

import (
	"errors"
	"fmt"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
)

// Kind tags a readiness condition
type Kind int

const (
	ElementVisible Kind = iota + 1
	ElementClickable
	ElementInvisible
	AllElementsVisible
	AllElementsInvisible
	AllElementsPresent
	ElementStale
	AlertPresent
	ScriptReady
)

func (k Kind) String() string {
	switch k {
	case ElementVisible:
		return "visibility"
	case ElementClickable:
		return "clickability"
	case ElementInvisible:
		return "invisibility"
	case AllElementsVisible:
		return "visibility of all"
	case AllElementsInvisible:
		return "invisibility of all"
	case AllElementsPresent:
		return "presence of all"
	case ElementStale:
		return "staleness"
	case AlertPresent:
		return "alert presence"
	case ScriptReady:
		return "script readiness"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Predicate is polled by ScriptReady conditions
type Predicate func(d interfaces.Driver) (bool, error)

// Condition is a readiness predicate over the browser state. Build one with
// the constructors below; the zero value is invalid.
type Condition struct {
	kind      Kind
	locator   entities.ResolvedLocator
	name      string
	predicate Predicate
}

func Visible(loc entities.ResolvedLocator) Condition {
	return Condition{kind: ElementVisible, locator: loc}
}

func Clickable(loc entities.ResolvedLocator) Condition {
	return Condition{kind: ElementClickable, locator: loc}
}

func Invisible(loc entities.ResolvedLocator) Condition {
	return Condition{kind: ElementInvisible, locator: loc}
}

func AllVisible(loc entities.ResolvedLocator) Condition {
	return Condition{kind: AllElementsVisible, locator: loc}
}

// AllInvisible captures the elements matching loc when the wait starts and
// then waits for each of them to be hidden or detached
func AllInvisible(loc entities.ResolvedLocator) Condition {
	return Condition{kind: AllElementsInvisible, locator: loc}
}

func AllPresent(loc entities.ResolvedLocator) Condition {
	return Condition{kind: AllElementsPresent, locator: loc}
}

// Stale finds the element matching loc when the wait starts and then waits
// for it to be detached from the DOM
func Stale(loc entities.ResolvedLocator) Condition {
	return Condition{kind: ElementStale, locator: loc}
}

func Alert() Condition {
	return Condition{kind: AlertPresent}
}

// Script wraps an arbitrary predicate; name is used in logs and errors
func Script(name string, p Predicate) Condition {
	return Condition{kind: ScriptReady, name: name, predicate: p}
}

func (c Condition) Kind() Kind                        { return c.kind }
func (c Condition) Locator() entities.ResolvedLocator { return c.locator }

func (c Condition) String() string {
	switch c.kind {
	case AlertPresent:
		return c.kind.String()
	case ScriptReady:
		return fmt.Sprintf("%s (%s)", c.kind, c.name)
	default:
		return fmt.Sprintf("%s of %s", c.kind, c.locator)
	}
}

// Outcome carries whatever the satisfied condition produces
type Outcome struct {
	Element  interfaces.Element
	Elements []interfaces.Element
	Alert    *AlertHandle
}

// probe is a condition bound to the elements captured when the wait started
type probe struct {
	Condition
	captured []interfaces.Element
}

func (c Condition) bind(d interfaces.Driver) (*probe, error) {
	p := &probe{Condition: c}
	switch c.kind {
	case 0:
		return nil, fmt.Errorf("zero condition")
	case ElementStale:
		el, err := d.FindElement(c.locator)
		if err != nil {
			return nil, entities.Driverf("find", c.locator, err)
		}
		p.captured = []interfaces.Element{el}
	case AllElementsInvisible:
		els, err := d.FindElements(c.locator)
		if err != nil {
			return nil, entities.Driverf("find all", c.locator, err)
		}
		p.captured = els
	case ScriptReady:
		if c.predicate == nil {
			return nil, fmt.Errorf("script condition %q has no predicate", c.name)
		}
	}
	return p, nil
}

// evaluate reports whether the condition holds right now. Errors that only
// mean "not yet" (missing element, stale element, no alert) are returned
// alongside ok=false and are filtered by the caller.
func (p *probe) evaluate(d interfaces.Driver) (Outcome, bool, error) {
	switch p.kind {
	case ElementVisible:
		el, err := d.FindElement(p.locator)
		if err != nil {
			return Outcome{}, false, err
		}
		shown, err := el.IsDisplayed()
		if err != nil || !shown {
			return Outcome{}, false, err
		}
		return Outcome{Element: el}, true, nil

	case ElementClickable:
		el, err := d.FindElement(p.locator)
		if err != nil {
			return Outcome{}, false, err
		}
		shown, err := el.IsDisplayed()
		if err != nil || !shown {
			return Outcome{}, false, err
		}
		enabled, err := el.IsEnabled()
		if err != nil || !enabled {
			return Outcome{}, false, err
		}
		return Outcome{Element: el}, true, nil

	case ElementInvisible:
		el, err := d.FindElement(p.locator)
		if err != nil {
			if gone(err) {
				return Outcome{}, true, nil
			}
			return Outcome{}, false, err
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			if gone(err) {
				return Outcome{}, true, nil
			}
			return Outcome{}, false, err
		}
		return Outcome{}, !shown, nil

	case AllElementsVisible:
		els, err := d.FindElements(p.locator)
		if err != nil || len(els) == 0 {
			return Outcome{}, false, err
		}
		for _, el := range els {
			shown, err := el.IsDisplayed()
			if err != nil || !shown {
				return Outcome{}, false, err
			}
		}
		return Outcome{Elements: els}, true, nil

	case AllElementsInvisible:
		for _, el := range p.captured {
			shown, err := el.IsDisplayed()
			if err != nil {
				if gone(err) {
					continue
				}
				return Outcome{}, false, err
			}
			if shown {
				return Outcome{}, false, nil
			}
		}
		return Outcome{}, true, nil

	case AllElementsPresent:
		els, err := d.FindElements(p.locator)
		if err != nil || len(els) == 0 {
			return Outcome{}, false, err
		}
		return Outcome{Elements: els}, true, nil

	case ElementStale:
		_, err := p.captured[0].IsEnabled()
		if err == nil {
			return Outcome{}, false, nil
		}
		if errors.Is(err, entities.ErrStaleElement) {
			return Outcome{}, true, nil
		}
		return Outcome{}, false, err

	case AlertPresent:
		text, err := d.AlertText()
		if err != nil {
			return Outcome{}, false, err
		}
		return Outcome{Alert: &AlertHandle{driver: d, text: text}}, true, nil

	case ScriptReady:
		ok, err := p.predicate(d)
		return Outcome{}, ok, err
	}
	return Outcome{}, false, fmt.Errorf("unknown condition kind %d", int(p.kind))
}

// transient reports errors that mean "condition not met yet"
func transient(err error) bool {
	return errors.Is(err, entities.ErrNoSuchElement) ||
		errors.Is(err, entities.ErrStaleElement) ||
		errors.Is(err, entities.ErrNoAlert)
}

func gone(err error) bool {
	return errors.Is(err, entities.ErrNoSuchElement) || errors.Is(err, entities.ErrStaleElement)
}

// AlertHandle is an alert observed by an AlertPresent wait
type AlertHandle struct {
	driver interfaces.Driver
	text   string
}

// Text - returns the alert message captured when the wait succeeded
func (a *AlertHandle) Text() string { return a.text }

func (a *AlertHandle) Accept() error {
	return entities.Driverf("accept alert", "", a.driver.AcceptAlert())
}

func (a *AlertHandle) Dismiss() error {
	return entities.Driverf("dismiss alert", "", a.driver.DismissAlert())
}

// SendKeys - types into a prompt alert; the alert stays open
func (a *AlertHandle) SendKeys(text string) error {
	return entities.Driverf("send alert text", "", a.driver.SetAlertText(text))
}
