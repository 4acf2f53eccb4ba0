package browser

import (
	"context"
	"fmt"

	"storefront_automation/application/scripts"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
)

// Highlight outlines the element for a moment, then restores its original
// style attribute even when ctx ends during the pause
func (c *Context) Highlight(ctx context.Context, loc entities.ResolvedLocator) error {
	el, err := c.find(loc)
	if err != nil {
		return err
	}
	original, err := el.Attribute("style")
	if err != nil {
		return entities.Driverf("attribute style", loc, err)
	}
	if _, err := c.driver.ExecuteScript(scripts.SetAttribute, el, "style", scripts.HighlightStyle); err != nil {
		return entities.Driverf("highlight", loc, err)
	}
	perr := c.wait.Pause(ctx, c.highlight)
	if _, err := c.driver.ExecuteScript(scripts.SetAttribute, el, "style", original); err != nil {
		return entities.Driverf("restore style", loc, err)
	}
	return perr
}

// ForceSetValue - writes the value attribute directly, skipping key events
func (c *Context) ForceSetValue(loc entities.ResolvedLocator, value string) error {
	el, err := c.find(loc)
	if err != nil {
		return err
	}
	_, err = c.driver.ExecuteScript(scripts.SetAttribute, el, "value", value)
	return entities.Driverf("set value", loc, err)
}

func (c *Context) RemoveAttribute(loc entities.ResolvedLocator, name string) error {
	el, err := c.find(loc)
	if err != nil {
		return err
	}
	_, err = c.driver.ExecuteScript(scripts.RemoveAttribute, el, name)
	return entities.Driverf("remove attribute "+name, loc, err)
}

func (c *Context) ScrollIntoView(loc entities.ResolvedLocator) error {
	el, err := c.find(loc)
	if err != nil {
		return err
	}
	_, err = c.driver.ExecuteScript(scripts.ScrollIntoView, el)
	return entities.Driverf("scroll into view", loc, err)
}

func (c *Context) ScrollToBottom() error {
	_, err := c.driver.ExecuteScript(scripts.ScrollToBottom)
	return entities.Driverf("scroll to bottom", "", err)
}

// NavigateByScript - assigns window.location instead of a driver navigation
func (c *Context) NavigateByScript(url string) error {
	_, err := c.driver.ExecuteScript(scripts.NavigateTo, url)
	return entities.Driverf("navigate by script", "", err)
}

// InnerText - returns the rendered text of the whole document
func (c *Context) InnerText() (string, error) {
	v, err := c.driver.ExecuteScript(scripts.InnerText)
	if err != nil {
		return "", entities.Driverf("inner text", "", err)
	}
	return asString(v), nil
}

// ShadowElement - returns the first node matching css inside the shadow
// root attached to host
func (c *Context) ShadowElement(host entities.ResolvedLocator, css string) (interfaces.Element, error) {
	el, err := c.find(host)
	if err != nil {
		return nil, err
	}
	v, err := c.driver.ExecuteScript(scripts.ShadowQuery, el, css)
	if err != nil {
		return nil, entities.Driverf("shadow query", host, err)
	}
	node, ok := v.(interfaces.Element)
	if !ok || node == nil {
		return nil, entities.Driverf("shadow query", host, fmt.Errorf("%w: %s in shadow root", entities.ErrNoSuchElement, css))
	}
	return node, nil
}

// ValidationMessage - returns the browser's constraint validation message
func (c *Context) ValidationMessage(loc entities.ResolvedLocator) (string, error) {
	el, err := c.find(loc)
	if err != nil {
		return "", err
	}
	v, err := c.driver.ExecuteScript(scripts.ValidationMessage, el)
	if err != nil {
		return "", entities.Driverf("validation message", loc, err)
	}
	return asString(v), nil
}

// ImageLoaded - reports whether the image finished loading with a non-zero width
func (c *Context) ImageLoaded(loc entities.ResolvedLocator) (bool, error) {
	el, err := c.find(loc)
	if err != nil {
		return false, err
	}
	v, err := c.driver.ExecuteScript(scripts.ImageLoaded, el)
	if err != nil {
		return false, entities.Driverf("image loaded", loc, err)
	}
	return asBool(v), nil
}
