package browser

import (
	"context"

	"storefront_automation/domain/entities"
)

func (c *Context) Cookies() ([]entities.Cookie, error) {
	cookies, err := c.driver.Cookies()
	return cookies, entities.Driverf("get cookies", "", err)
}

// SetCookies adds cookies to the current domain, lets the browser settle
// for the configured pause and reloads so the page renders with them
func (c *Context) SetCookies(ctx context.Context, cookies []entities.Cookie) error {
	for _, cookie := range cookies {
		if err := c.driver.AddCookie(cookie); err != nil {
			return entities.Driverf("add cookie "+cookie.Name, "", err)
		}
	}
	c.logger.Debugf("Added %d cookies, reloading in %s", len(cookies), c.cookieSettle)
	if err := c.wait.Pause(ctx, c.cookieSettle); err != nil {
		return err
	}
	return c.Refresh()
}
