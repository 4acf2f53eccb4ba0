// Package pages models the storefront and admin console as page objects.
// Every page holds the session Toolkit; navigation methods return the
// concrete page the browser lands on.
package pages

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront_automation/application/browser"
	"storefront_automation/application/element"
	"storefront_automation/application/wait"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
)

// Toolkit bundles the helpers of one browser session. It does not own the
// driver; whoever started the session quits it.
type Toolkit struct {
	Browser *browser.Context
	Element *element.Actions
	Wait    *wait.Engine
	Pages   *Factory

	urls        config.URLConfig
	credentials config.CredentialsConfig
	logger      *logrus.Entry
}

// NewToolkit - binds the helpers to driver and sets the session implicit
// wait to the long timeout
func NewToolkit(driver interfaces.Driver, cfg *config.Config, logger *logrus.Logger) (*Toolkit, error) {
	if err := driver.SetImplicitWait(cfg.Timeouts.Long); err != nil {
		return nil, fmt.Errorf("failed to set implicit wait: %w", err)
	}
	engine := wait.NewEngine(driver, cfg.Timeouts, logger)
	tk := &Toolkit{
		Browser:     browser.NewContext(driver, engine, cfg, logger),
		Element:     element.NewActions(driver, engine, cfg.Timeouts, logger),
		Wait:        engine,
		urls:        cfg.URLs,
		credentials: cfg.Credentials,
		logger:      logging.Component(logger, "pages"),
	}
	tk.Pages = &Factory{tk: tk}
	return tk, nil
}

func (tk *Toolkit) URLs() config.URLConfig { return tk.urls }

func (tk *Toolkit) Credentials() config.CredentialsConfig { return tk.credentials }

// click - waits for the element to be clickable, then clicks it
func (tk *Toolkit) click(ctx context.Context, t entities.LocatorTemplate, args ...string) error {
	loc := t.MustResolve(args...)
	if _, err := tk.Wait.ElementClickable(ctx, loc); err != nil {
		return err
	}
	return tk.Element.Click(loc)
}

// typeText - waits for the field to be visible, then replaces its value
func (tk *Toolkit) typeText(ctx context.Context, t entities.LocatorTemplate, text string, args ...string) error {
	loc := t.MustResolve(args...)
	if _, err := tk.Wait.ElementVisible(ctx, loc); err != nil {
		return err
	}
	return tk.Element.Type(loc, text)
}

// text - waits for the element to be visible and returns its text
func (tk *Toolkit) text(ctx context.Context, t entities.LocatorTemplate, args ...string) (string, error) {
	loc := t.MustResolve(args...)
	if _, err := tk.Wait.ElementVisible(ctx, loc); err != nil {
		return "", err
	}
	return tk.Element.Text(loc)
}

// texts - waits for every match to be visible and returns their texts
func (tk *Toolkit) texts(ctx context.Context, t entities.LocatorTemplate, args ...string) ([]string, error) {
	els, err := tk.Wait.AllElementsVisible(ctx, t.MustResolve(args...))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		s, err := el.Text()
		if err != nil {
			return nil, entities.Driverf("text", t.MustResolve(args...), err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (tk *Toolkit) displayed(t entities.LocatorTemplate, args ...string) (bool, error) {
	return tk.Element.IsDisplayed(t.MustResolve(args...))
}

func (tk *Toolkit) undisplayed(t entities.LocatorTemplate, args ...string) (bool, error) {
	return tk.Element.IsUndisplayed(t.MustResolve(args...))
}
