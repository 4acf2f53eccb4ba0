package webdriver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// implicitPoll is how often a lookup re-queries the DOM while the implicit wait runs
const implicitPoll = 100 * time.Millisecond

type playwrightLauncher struct {
	cfg       config.BrowserConfig
	downloads string
	logger    *logrus.Entry

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywrightLauncher - creates a session factory backed by Playwright Chromium.
// Every session is an isolated browser context of one shared browser.
func NewPlaywrightLauncher(cfg config.BrowserConfig, downloads string, logger *logrus.Logger) interfaces.SessionFactory {
	return &playwrightLauncher{
		cfg:       cfg,
		downloads: downloads,
		logger:    logging.Component(logger, "playwright"),
	}
}

func (l *playwrightLauncher) ensureBrowser() (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil {
		return l.browser, nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		Args: []string{
			"--disable-popup-blocking",
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if binary := findChromeBinary(l.cfg.BinaryPath); l.cfg.BinaryPath != "" && binary != "" {
		l.logger.Infof("Using Chrome binary at: %s", binary)
		opts.ExecutablePath = playwright.String(binary)
	}

	browser, err := pw.Chromium.Launch(opts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	l.pw = pw
	l.browser = browser
	return browser, nil
}

// NewSession - opens a new browser context with a single page
func (l *playwrightLauncher) NewSession(ctx context.Context) (interfaces.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := l.ensureBrowser()
	if err != nil {
		return nil, err
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.WindowWidth,
			Height: l.cfg.WindowHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
		AcceptDownloads:   playwright.Bool(true),
		BypassCSP:         playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	d := &playwrightDriver{
		context:   bctx,
		downloads: l.downloads,
		logger:    l.logger,
		pages:     make(map[string]playwright.Page),
		dialogs:   make(map[string]playwright.Dialog),
	}
	bctx.OnPage(d.track)

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	d.track(page)
	d.current = d.handleOf(page)

	l.logger.Debug("Playwright session started")
	return d, nil
}

// Close - shuts the shared browser and the Playwright driver down
func (l *playwrightLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.browser != nil {
		if err := l.browser.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		l.browser = nil
	}
	if l.pw != nil {
		if err := l.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		l.pw = nil
	}
	return errors.Join(errs...)
}

func isClosedErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}

// playwrightDriver adapts a Playwright browser context to interfaces.Driver.
// Pages play the role of windows and carry generated handles.
type playwrightDriver struct {
	context   playwright.BrowserContext
	downloads string
	logger    *logrus.Entry

	mu      sync.Mutex
	pages   map[string]playwright.Page
	order   []string
	current string
	frame   playwright.Frame
	dialogs map[string]playwright.Dialog
	prompt  *string

	implicit time.Duration
}

// track - registers a page opened by the context, including popups
func (d *playwrightDriver) track(page playwright.Page) {
	handle := uuid.NewString()

	d.mu.Lock()
	for _, p := range d.pages {
		if p == page {
			d.mu.Unlock()
			return
		}
	}
	d.pages[handle] = page
	d.order = append(d.order, handle)
	d.mu.Unlock()

	page.OnDialog(func(dialog playwright.Dialog) {
		d.mu.Lock()
		d.dialogs[handle] = dialog
		d.mu.Unlock()
	})
	page.OnDownload(d.saveDownload)
	page.OnClose(func(playwright.Page) {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.pages, handle)
		delete(d.dialogs, handle)
		for i, h := range d.order {
			if h == handle {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	})
}

// saveDownload - moves a finished download into the download folder under
// the name the site suggested
func (d *playwrightDriver) saveDownload(download playwright.Download) {
	if d.downloads == "" {
		return
	}
	target := downloadTarget(d.downloads, download.SuggestedFilename())
	if err := download.SaveAs(target); err != nil {
		d.logger.Warnf("Failed to save download %s: %v", target, err)
		return
	}
	d.logger.Debugf("Saved download to %s", target)
}

func downloadTarget(dir, suggested string) string {
	return filepath.Join(dir, filepath.Base(suggested))
}

func (d *playwrightDriver) handleOf(page playwright.Page) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for h, p := range d.pages {
		if p == page {
			return h
		}
	}
	return ""
}

func (d *playwrightDriver) page() (playwright.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	page, ok := d.pages[d.current]
	if !ok {
		return nil, fmt.Errorf("no such window: %s", d.current)
	}
	return page, nil
}

// scope - returns the active frame, defaulting to the main frame of the page
func (d *playwrightDriver) scope() (playwright.Frame, error) {
	page, err := d.page()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	frame := d.frame
	d.mu.Unlock()
	if frame != nil {
		return frame, nil
	}
	return page.MainFrame(), nil
}

// playwrightError - maps Playwright failures onto the shared sentinels
func playwrightError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not attached to the DOM"),
		strings.Contains(msg, "Element is not attached"),
		strings.Contains(msg, "JSHandle is disposed"):
		return fmt.Errorf("%w: %v", entities.ErrStaleElement, err)
	}
	return err
}

func (d *playwrightDriver) Navigate(url string) error {
	page, err := d.page()
	if err != nil {
		return err
	}
	d.resetFrame()
	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (d *playwrightDriver) CurrentURL() (string, error) {
	page, err := d.page()
	if err != nil {
		return "", err
	}
	return page.URL(), nil
}

func (d *playwrightDriver) Title() (string, error) {
	page, err := d.page()
	if err != nil {
		return "", err
	}
	return page.Title()
}

func (d *playwrightDriver) PageSource() (string, error) {
	frame, err := d.scope()
	if err != nil {
		return "", err
	}
	return frame.Content()
}

func (d *playwrightDriver) Back() error {
	page, err := d.page()
	if err != nil {
		return err
	}
	d.resetFrame()
	_, err = page.GoBack()
	return err
}

func (d *playwrightDriver) Forward() error {
	page, err := d.page()
	if err != nil {
		return err
	}
	d.resetFrame()
	_, err = page.GoForward()
	return err
}

func (d *playwrightDriver) Refresh() error {
	page, err := d.page()
	if err != nil {
		return err
	}
	d.resetFrame()
	_, err = page.Reload()
	return err
}

func (d *playwrightDriver) resetFrame() {
	d.mu.Lock()
	d.frame = nil
	d.mu.Unlock()
}

func (d *playwrightDriver) Cookies() ([]entities.Cookie, error) {
	raw, err := d.context.Cookies()
	if err != nil {
		return nil, err
	}
	cookies := make([]entities.Cookie, 0, len(raw))
	for _, c := range raw {
		cookie := entities.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		if c.Expires > 0 {
			cookie.Expiry = time.Unix(int64(c.Expires), 0).UTC()
		}
		cookies = append(cookies, cookie)
	}
	return cookies, nil
}

func (d *playwrightDriver) AddCookie(cookie entities.Cookie) error {
	opt := playwright.OptionalCookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Secure:   playwright.Bool(cookie.Secure),
		HttpOnly: playwright.Bool(cookie.HTTPOnly),
	}
	if cookie.Domain != "" {
		path := cookie.Path
		if path == "" {
			path = "/"
		}
		opt.Domain = playwright.String(cookie.Domain)
		opt.Path = playwright.String(path)
	} else {
		page, err := d.page()
		if err != nil {
			return err
		}
		opt.URL = playwright.String(page.URL())
	}
	if !cookie.Expiry.IsZero() {
		opt.Expires = playwright.Float(float64(cookie.Expiry.Unix()))
	}
	return d.context.AddCookies([]playwright.OptionalCookie{opt})
}

func (d *playwrightDriver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.order...), nil
}

func (d *playwrightDriver) CurrentWindowHandle() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pages[d.current]; !ok {
		return "", fmt.Errorf("no such window: %s", d.current)
	}
	return d.current, nil
}

func (d *playwrightDriver) SwitchWindow(handle string) error {
	d.mu.Lock()
	page, ok := d.pages[handle]
	if ok {
		d.current = handle
		d.frame = nil
	}
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("no such window: %s", handle)
	}
	return page.BringToFront()
}

func (d *playwrightDriver) CloseWindow() error {
	page, err := d.page()
	if err != nil {
		return err
	}
	return page.Close()
}

func (d *playwrightDriver) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		d.resetFrame()
		return nil
	}
	el, ok := frame.(*playwrightElement)
	if !ok {
		return fmt.Errorf("frame element of type %T does not belong to this session", frame)
	}
	content, err := el.handle.ContentFrame()
	if err != nil {
		return playwrightError(err)
	}
	if content == nil {
		return fmt.Errorf("element is not a frame")
	}
	d.mu.Lock()
	d.frame = content
	d.mu.Unlock()
	return nil
}

// pendingDialog - removes and returns the open dialog of the active page
func (d *playwrightDriver) pendingDialog(take bool) (playwright.Dialog, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dialog, ok := d.dialogs[d.current]
	if !ok {
		return nil, entities.ErrNoAlert
	}
	if take {
		delete(d.dialogs, d.current)
	}
	return dialog, nil
}

func (d *playwrightDriver) AcceptAlert() error {
	dialog, err := d.pendingDialog(true)
	if err != nil {
		return err
	}

	d.mu.Lock()
	prompt := d.prompt
	d.prompt = nil
	d.mu.Unlock()

	if prompt != nil {
		return dialog.Accept(*prompt)
	}
	return dialog.Accept()
}

func (d *playwrightDriver) DismissAlert() error {
	dialog, err := d.pendingDialog(true)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.prompt = nil
	d.mu.Unlock()
	return dialog.Dismiss()
}

func (d *playwrightDriver) AlertText() (string, error) {
	dialog, err := d.pendingDialog(false)
	if err != nil {
		return "", err
	}
	return dialog.Message(), nil
}

// SetAlertText - stores the prompt answer sent when the dialog is accepted
func (d *playwrightDriver) SetAlertText(text string) error {
	if _, err := d.pendingDialog(false); err != nil {
		return err
	}
	d.mu.Lock()
	d.prompt = &text
	d.mu.Unlock()
	return nil
}

// wrapScript - turns a WebDriver style script body into a Playwright
// expression that receives the arguments as one array
func wrapScript(script string) string {
	return "(args) => (function() {\n" + script + "\n}).apply(null, args)"
}

// ExecuteScript - evaluates script in the active frame. Element arguments
// are passed as handles and element results come back as Element values.
func (d *playwrightDriver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	frame, err := d.scope()
	if err != nil {
		return nil, err
	}

	unwrapped := make([]interface{}, len(args))
	for i, arg := range args {
		if el, ok := arg.(*playwrightElement); ok {
			unwrapped[i] = el.handle
			continue
		}
		unwrapped[i] = arg
	}

	handle, err := frame.EvaluateHandle(wrapScript(script), unwrapped)
	if err != nil {
		return nil, playwrightError(err)
	}
	if handle == nil {
		return nil, nil
	}
	if el := handle.AsElement(); el != nil {
		return &playwrightElement{handle: el}, nil
	}
	defer handle.Dispose()

	value, err := handle.JSONValue()
	if err != nil {
		return nil, playwrightError(err)
	}
	return value, nil
}

// query - evaluates the XPath once in the active frame
func (d *playwrightDriver) query(locator entities.ResolvedLocator) ([]playwright.ElementHandle, error) {
	frame, err := d.scope()
	if err != nil {
		return nil, err
	}
	return frame.QuerySelectorAll("xpath=" + locator.String())
}

// lookup - repeats query while it finds nothing, up to the implicit wait
func (d *playwrightDriver) lookup(locator entities.ResolvedLocator) ([]playwright.ElementHandle, error) {
	deadline := time.Now().Add(d.implicit)
	for {
		handles, err := d.query(locator)
		if err != nil {
			return nil, playwrightError(err)
		}
		if len(handles) > 0 || !time.Now().Before(deadline) {
			return handles, nil
		}
		time.Sleep(implicitPoll)
	}
}

func (d *playwrightDriver) FindElement(locator entities.ResolvedLocator) (interfaces.Element, error) {
	handles, err := d.lookup(locator)
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrNoSuchElement, locator)
	}
	return &playwrightElement{handle: handles[0]}, nil
}

func (d *playwrightDriver) FindElements(locator entities.ResolvedLocator) ([]interfaces.Element, error) {
	handles, err := d.lookup(locator)
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements, nil
}

func (d *playwrightDriver) ImplicitWait() time.Duration {
	return d.implicit
}

func (d *playwrightDriver) SetImplicitWait(timeout time.Duration) error {
	d.implicit = timeout
	return nil
}

func (d *playwrightDriver) Screenshot() ([]byte, error) {
	page, err := d.page()
	if err != nil {
		return nil, err
	}
	return page.Screenshot()
}

func (d *playwrightDriver) Quit() error {
	if err := d.context.Close(); err != nil && !isClosedErr(err) {
		return fmt.Errorf("failed to close context: %w", err)
	}
	return nil
}

// playwrightElement adapts playwright.ElementHandle to interfaces.Element
type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click() error {
	return playwrightError(e.handle.Click())
}

func (e *playwrightElement) SendKeys(text string) error {
	return playwrightError(e.handle.Type(text))
}

func (e *playwrightElement) Clear() error {
	return playwrightError(e.handle.Fill(""))
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.handle.InnerText()
	return text, playwrightError(err)
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	// live properties such as value are read first, like WebDriver does
	value, err := e.handle.Evaluate(`(el, name) => {
		const prop = el[name];
		if (prop !== undefined && prop !== null && typeof prop !== 'object' && typeof prop !== 'function') {
			return String(prop);
		}
		const attr = el.getAttribute(name);
		return attr === null ? '' : attr;
	}`, name)
	if err != nil {
		return "", playwrightError(err)
	}
	s, _ := value.(string)
	return s, nil
}

func (e *playwrightElement) CSSValue(property string) (string, error) {
	value, err := e.handle.Evaluate(`(el, prop) => getComputedStyle(el).getPropertyValue(prop)`, property)
	if err != nil {
		return "", playwrightError(err)
	}
	s, _ := value.(string)
	return s, nil
}

func (e *playwrightElement) IsDisplayed() (bool, error) {
	ok, err := e.handle.IsVisible()
	return ok, playwrightError(err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	ok, err := e.handle.IsEnabled()
	return ok, playwrightError(err)
}

func (e *playwrightElement) IsSelected() (bool, error) {
	value, err := e.handle.Evaluate(`el => !!(el.checked || el.selected)`)
	if err != nil {
		return false, playwrightError(err)
	}
	ok, _ := value.(bool)
	return ok, nil
}

func (e *playwrightElement) Hover() error {
	return playwrightError(e.handle.Hover())
}

func (e *playwrightElement) PressKey(key entities.Key) error {
	return playwrightError(e.handle.Press(string(key)))
}
