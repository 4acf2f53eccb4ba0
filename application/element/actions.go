// Package element performs single-element interactions against the active
// browser session. Lookups go straight to the driver and rely on its
// implicit wait; callers that need an explicit readiness condition wait
// through the wait engine first.
package element

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront_automation/application/scripts"
	"storefront_automation/application/wait"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
)

// Actions drives elements of one browser session
type Actions struct {
	driver       interfaces.Driver
	wait         *wait.Engine
	logger       *logrus.Entry
	scrollSettle time.Duration
}

// NewActions - creates element actions bound to driver
func NewActions(driver interfaces.Driver, engine *wait.Engine, timeouts config.TimeoutConfig, logger *logrus.Logger) *Actions {
	return &Actions{
		driver:       driver,
		wait:         engine,
		logger:       logging.Component(logger, "element"),
		scrollSettle: timeouts.ScrollSettle,
	}
}

// Find - returns the first element matching loc
func (a *Actions) Find(loc entities.ResolvedLocator) (interfaces.Element, error) {
	el, err := a.driver.FindElement(loc)
	if err != nil {
		return nil, entities.Driverf("find", loc, err)
	}
	return el, nil
}

// FindAll - returns every element matching loc; no match is not an error
func (a *Actions) FindAll(loc entities.ResolvedLocator) ([]interfaces.Element, error) {
	els, err := a.driver.FindElements(loc)
	if err != nil {
		return nil, entities.Driverf("find all", loc, err)
	}
	return els, nil
}

func (a *Actions) Click(loc entities.ResolvedLocator) error {
	a.logger.Debugf("Clicking on: %s", loc)
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	return entities.Driverf("click", loc, el.Click())
}

// ClickByScript - clicks through an injected script, bypassing overlays
// that would intercept a native click
func (a *Actions) ClickByScript(loc entities.ResolvedLocator) error {
	a.logger.Debugf("Clicking by script on: %s", loc)
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	_, err = a.driver.ExecuteScript(scripts.Click, el)
	return entities.Driverf("script click", loc, err)
}

// Type - clears the field and sends text
func (a *Actions) Type(loc entities.ResolvedLocator, text string) error {
	a.logger.Debugf("Typing text into: %s", loc)
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return entities.Driverf("clear", loc, err)
	}
	return entities.Driverf("send keys", loc, el.SendKeys(text))
}

func (a *Actions) Text(loc entities.ResolvedLocator) (string, error) {
	el, err := a.Find(loc)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	return text, entities.Driverf("text", loc, err)
}

func (a *Actions) Attribute(loc entities.ResolvedLocator, name string) (string, error) {
	el, err := a.Find(loc)
	if err != nil {
		return "", err
	}
	value, err := el.Attribute(name)
	return value, entities.Driverf("attribute "+name, loc, err)
}

func (a *Actions) CSSValue(loc entities.ResolvedLocator, property string) (string, error) {
	el, err := a.Find(loc)
	if err != nil {
		return "", err
	}
	value, err := el.CSSValue(property)
	return value, entities.Driverf("css "+property, loc, err)
}

// Count - returns the number of elements matching loc
func (a *Actions) Count(loc entities.ResolvedLocator) (int, error) {
	els, err := a.FindAll(loc)
	return len(els), err
}

// SelectByVisibleText picks the option of a native <select> whose text is
// text. The option list is awaited first since nopCommerce fills some
// dropdowns asynchronously.
func (a *Actions) SelectByVisibleText(ctx context.Context, loc entities.ResolvedLocator, text string) error {
	a.logger.Debugf("Selecting %q in: %s", text, loc)
	options, err := a.wait.AllElementsPresent(ctx, loc.Child("/option"))
	if err != nil {
		return err
	}
	for _, option := range options {
		label, err := option.Text()
		if err != nil {
			return entities.Driverf("option text", loc, err)
		}
		if strings.TrimSpace(label) != text {
			continue
		}
		selected, err := option.IsSelected()
		if err != nil {
			return entities.Driverf("option selected", loc, err)
		}
		if selected {
			return nil
		}
		return entities.Driverf("select option", loc, option.Click())
	}
	return entities.Driverf("select", loc, fmt.Errorf("%w: option with text %q", entities.ErrNoSuchElement, text))
}

// SelectedOptionText - returns the text of the first selected option
func (a *Actions) SelectedOptionText(loc entities.ResolvedLocator) (string, error) {
	options, err := a.FindAll(loc.Child("/option"))
	if err != nil {
		return "", err
	}
	for _, option := range options {
		selected, err := option.IsSelected()
		if err != nil {
			return "", entities.Driverf("option selected", loc, err)
		}
		if selected {
			text, err := option.Text()
			return text, entities.Driverf("option text", loc, err)
		}
	}
	return "", entities.Driverf("selected option", loc, fmt.Errorf("%w: no option is selected", entities.ErrNoSuchElement))
}

// SelectInCustomDropdown opens a scripted dropdown and clicks the first item
// whose text equals item. Items outside the viewport are scrolled into view
// first. Selecting a value that is not listed does nothing.
func (a *Actions) SelectInCustomDropdown(ctx context.Context, parent, child entities.ResolvedLocator, item string) error {
	a.logger.Debugf("Selecting %q in custom dropdown: %s", item, parent)
	if err := a.Click(parent); err != nil {
		return err
	}
	items, err := a.wait.AllElementsPresent(ctx, child)
	if err != nil {
		return err
	}
	for _, el := range items {
		text, err := el.Text()
		if err != nil {
			return entities.Driverf("item text", child, err)
		}
		if text != item {
			continue
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			return entities.Driverf("item displayed", child, err)
		}
		if !shown {
			if _, err := a.driver.ExecuteScript(scripts.ScrollIntoView, el); err != nil {
				return entities.Driverf("scroll into view", child, err)
			}
			if err := a.wait.Pause(ctx, a.scrollSettle); err != nil {
				return err
			}
		}
		return entities.Driverf("click item", child, el.Click())
	}
	a.logger.Debugf("No item %q in custom dropdown: %s", item, child)
	return nil
}

// Check - selects a checkbox or radio unless it already is
func (a *Actions) Check(loc entities.ResolvedLocator) error {
	return a.ensureSelected(loc, true)
}

// Uncheck - clears a checkbox unless it already is
func (a *Actions) Uncheck(loc entities.ResolvedLocator) error {
	return a.ensureSelected(loc, false)
}

func (a *Actions) ensureSelected(loc entities.ResolvedLocator, want bool) error {
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	selected, err := el.IsSelected()
	if err != nil {
		return entities.Driverf("selected", loc, err)
	}
	if selected == want {
		return nil
	}
	return entities.Driverf("click", loc, el.Click())
}

func (a *Actions) IsEnabled(loc entities.ResolvedLocator) (bool, error) {
	el, err := a.Find(loc)
	if err != nil {
		return false, err
	}
	ok, err := el.IsEnabled()
	return ok, entities.Driverf("enabled", loc, err)
}

func (a *Actions) IsDisplayed(loc entities.ResolvedLocator) (bool, error) {
	el, err := a.Find(loc)
	if err != nil {
		return false, err
	}
	ok, err := el.IsDisplayed()
	return ok, entities.Driverf("displayed", loc, err)
}

func (a *Actions) IsSelected(loc entities.ResolvedLocator) (bool, error) {
	el, err := a.Find(loc)
	if err != nil {
		return false, err
	}
	ok, err := el.IsSelected()
	return ok, entities.Driverf("selected", loc, err)
}

// IsUndisplayed reports whether loc is absent or hidden. The lookup runs
// under the short implicit wait so an absent element answers quickly. Only
// the first match is inspected; a match detached meanwhile counts as hidden.
func (a *Actions) IsUndisplayed(loc entities.ResolvedLocator) (bool, error) {
	var els []interfaces.Element
	err := a.wait.ProbeShort(func() error {
		var err error
		els, err = a.FindAll(loc)
		return err
	})
	if err != nil {
		return false, err
	}
	if len(els) == 0 {
		return true, nil
	}
	shown, err := els[0].IsDisplayed()
	if err != nil {
		if errors.Is(err, entities.ErrStaleElement) {
			return true, nil
		}
		return false, entities.Driverf("displayed", loc, err)
	}
	return !shown, nil
}

func (a *Actions) Hover(loc entities.ResolvedLocator) error {
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	return entities.Driverf("hover", loc, el.Hover())
}

func (a *Actions) PressKey(loc entities.ResolvedLocator, key entities.Key) error {
	el, err := a.Find(loc)
	if err != nil {
		return err
	}
	return entities.Driverf("press "+string(key), loc, el.PressKey(key))
}

// DragAndDrop - drags source onto target using synthetic HTML5 drag events
func (a *Actions) DragAndDrop(source, target entities.ResolvedLocator) error {
	from, err := a.Find(source)
	if err != nil {
		return err
	}
	to, err := a.Find(target)
	if err != nil {
		return err
	}
	_, err = a.driver.ExecuteScript(scripts.DragAndDrop, from, to)
	return entities.Driverf("drag and drop", source, err)
}

// texts - collects the rendered text of every element matching loc
func (a *Actions) texts(loc entities.ResolvedLocator) ([]string, error) {
	els, err := a.FindAll(loc)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, entities.Driverf("text", loc, err)
		}
		out = append(out, text)
	}
	return out, nil
}
