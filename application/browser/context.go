// Package browser exposes session-wide operations: navigation, windows,
// frames, alerts, cookies and script utilities.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront_automation/application/wait"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
)

// Context wraps one browser session
type Context struct {
	driver       interfaces.Driver
	wait         *wait.Engine
	paths        config.PathConfig
	cookieSettle time.Duration
	highlight    time.Duration
	logger       *logrus.Entry
}

// NewContext - creates a browser context bound to driver
func NewContext(driver interfaces.Driver, engine *wait.Engine, cfg *config.Config, logger *logrus.Logger) *Context {
	return &Context{
		driver:       driver,
		wait:         engine,
		paths:        cfg.Paths,
		cookieSettle: cfg.Timeouts.CookieSettle,
		highlight:    cfg.Timeouts.Highlight,
		logger:       logging.Component(logger, "browser"),
	}
}

// Driver - returns the underlying session
func (c *Context) Driver() interfaces.Driver {
	return c.driver
}

func (c *Context) Open(url string) error {
	c.logger.Infof("Navigating to: %s", url)
	return entities.Driverf("navigate", "", c.driver.Navigate(url))
}

func (c *Context) Title() (string, error) {
	title, err := c.driver.Title()
	return title, entities.Driverf("title", "", err)
}

func (c *Context) URL() (string, error) {
	url, err := c.driver.CurrentURL()
	return url, entities.Driverf("current url", "", err)
}

func (c *Context) PageSource() (string, error) {
	src, err := c.driver.PageSource()
	return src, entities.Driverf("page source", "", err)
}

func (c *Context) Back() error {
	return entities.Driverf("back", "", c.driver.Back())
}

func (c *Context) Forward() error {
	return entities.Driverf("forward", "", c.driver.Forward())
}

func (c *Context) Refresh() error {
	return entities.Driverf("refresh", "", c.driver.Refresh())
}

// JQueryAndScriptLoaded - waits for jQuery to go idle and the document to complete
func (c *Context) JQueryAndScriptLoaded(ctx context.Context) (bool, error) {
	return c.wait.JQueryAndScriptLoaded(ctx)
}

// Screenshot - captures the visible viewport as PNG
func (c *Context) Screenshot() ([]byte, error) {
	png, err := c.driver.Screenshot()
	return png, entities.Driverf("screenshot", "", err)
}

// UploadPath - returns the value a file input expects for the given files
// from the upload folder
func (c *Context) UploadPath(names ...string) string {
	return c.paths.UploadPath(names...)
}

// WaitForDownload - waits up to the long timeout for name to land complete
// in the download folder and returns its path
func (c *Context) WaitForDownload(ctx context.Context, name string) (string, error) {
	path := c.paths.DownloadPath(name)
	cond := wait.Script("download of "+name, func(interfaces.Driver) (bool, error) {
		return downloaded(path), nil
	})
	if _, err := c.wait.AwaitLong(ctx, cond); err != nil {
		return "", err
	}
	c.logger.Infof("Downloaded: %s", path)
	return path, nil
}

// downloaded - the file exists and Chrome no longer writes its partial copy
func downloaded(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	_, err = os.Stat(path + ".crdownload")
	return errors.Is(err, fs.ErrNotExist)
}

// Pause - sleeps for d unless ctx ends first
func (c *Context) Pause(ctx context.Context, d time.Duration) error {
	return c.wait.Pause(ctx, d)
}

// Execute - runs a raw script in the active frame
func (c *Context) Execute(script string, args ...interface{}) (interface{}, error) {
	result, err := c.driver.ExecuteScript(script, args...)
	return result, entities.Driverf("execute script", "", err)
}

func (c *Context) find(loc entities.ResolvedLocator) (interfaces.Element, error) {
	el, err := c.driver.FindElement(loc)
	if err != nil {
		return nil, entities.Driverf("find", loc, err)
	}
	return el, nil
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

// HasInnerText - reports whether the rendered text of the page contains expected
func (c *Context) HasInnerText(expected string) (bool, error) {
	text, err := c.InnerText()
	if err != nil {
		return false, err
	}
	return strings.Contains(text, expected), nil
}
