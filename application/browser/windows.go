package browser

import (
	"context"
	"strings"

	"storefront_automation/application/wait"
	"storefront_automation/domain/entities"
)

func (c *Context) WindowHandle() (string, error) {
	handle, err := c.driver.CurrentWindowHandle()
	return handle, entities.Driverf("window handle", "", err)
}

func (c *Context) SwitchToWindow(handle string) error {
	return entities.Driverf("switch window", "", c.driver.SwitchWindow(handle))
}

// SwitchToWindowNotHome - switches to the first window whose handle is not home
func (c *Context) SwitchToWindowNotHome(home string) error {
	handles, err := c.driver.WindowHandles()
	if err != nil {
		return entities.Driverf("window handles", "", err)
	}
	for _, h := range handles {
		if h != home {
			return c.SwitchToWindow(h)
		}
	}
	return nil
}

// SwitchToWindowByTitle visits windows in handle order and stops on the
// first whose title contains title. Without a match the session is left on
// the last window visited and false is returned.
func (c *Context) SwitchToWindowByTitle(title string) (bool, error) {
	handles, err := c.driver.WindowHandles()
	if err != nil {
		return false, entities.Driverf("window handles", "", err)
	}
	for _, h := range handles {
		if err := c.SwitchToWindow(h); err != nil {
			return false, err
		}
		current, err := c.Title()
		if err != nil {
			return false, err
		}
		if strings.Contains(current, title) {
			return true, nil
		}
	}
	c.logger.Debugf("No window titled %q among %d windows", title, len(handles))
	return false, nil
}

// CloseAllExceptParent - closes every window but parent and returns to parent
func (c *Context) CloseAllExceptParent(parent string) error {
	handles, err := c.driver.WindowHandles()
	if err != nil {
		return entities.Driverf("window handles", "", err)
	}
	for _, h := range handles {
		if h != parent {
			if err := c.SwitchToWindow(h); err != nil {
				return err
			}
			if err := c.driver.CloseWindow(); err != nil {
				return entities.Driverf("close window", "", err)
			}
		}
		if err := c.SwitchToWindow(parent); err != nil {
			return err
		}
	}
	return nil
}

// EnterFrame - moves the session into the frame element matching loc
func (c *Context) EnterFrame(loc entities.ResolvedLocator) error {
	frame, err := c.find(loc)
	if err != nil {
		return err
	}
	return entities.Driverf("switch frame", loc, c.driver.SwitchFrame(frame))
}

// ExitFrame - returns to the top-level document
func (c *Context) ExitFrame() error {
	return entities.Driverf("switch to default content", "", c.driver.SwitchFrame(nil))
}

// WaitForAlert - waits up to the long timeout for an alert
func (c *Context) WaitForAlert(ctx context.Context) (*wait.AlertHandle, error) {
	return c.wait.AlertPresent(ctx)
}

func (c *Context) AcceptAlert(ctx context.Context) error {
	alert, err := c.WaitForAlert(ctx)
	if err != nil {
		return err
	}
	return alert.Accept()
}

func (c *Context) DismissAlert(ctx context.Context) error {
	alert, err := c.WaitForAlert(ctx)
	if err != nil {
		return err
	}
	return alert.Dismiss()
}

func (c *Context) AlertText(ctx context.Context) (string, error) {
	alert, err := c.WaitForAlert(ctx)
	if err != nil {
		return "", err
	}
	return alert.Text(), nil
}

// SendKeysToAlert - types into a prompt; the prompt stays open
func (c *Context) SendKeysToAlert(ctx context.Context, text string) error {
	alert, err := c.WaitForAlert(ctx)
	if err != nil {
		return err
	}
	return alert.SendKeys(text)
}
