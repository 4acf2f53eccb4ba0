package webdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// Keys WebDriver uses to mark element references in script results
const (
	w3cElementKey    = "element-6066-11e4-a52e-4f735466cecf"
	legacyElementKey = "ELEMENT"
)

type seleniumLauncher struct {
	cfg       config.BrowserConfig
	downloads string
	logger    *logrus.Entry

	mu      sync.Mutex
	service *selenium.Service
	binary  string
}

// NewSeleniumLauncher - creates a session factory backed by a local ChromeDriver.
// The driver service starts with the first session and is shared afterwards.
func NewSeleniumLauncher(cfg config.BrowserConfig, downloads string, logger *logrus.Logger) interfaces.SessionFactory {
	return &seleniumLauncher{
		cfg:       cfg,
		downloads: downloads,
		logger:    logging.Component(logger, "selenium"),
	}
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		return "", fmt.Errorf("chromedriver not found at %s", configured)
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// chromeArgs - builds the command line flags of a session
func chromeArgs(cfg config.BrowserConfig) []string {
	args := []string{
		"--disable-blink-features=AutomationControlled",
		"--disable-dev-shm-usage",
		"--no-sandbox",
	}
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		args = append(args, fmt.Sprintf("--window-size=%d,%d", cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.Headless {
		args = append(args, "--headless=new")
	}
	return args
}

func (l *seleniumLauncher) ensureService() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.service != nil {
		return nil
	}

	driverPath, err := findChromeDriver(l.cfg.DriverPath)
	if err != nil {
		return fmt.Errorf("failed to find chromedriver: %w", err)
	}
	l.logger.Infof("Using ChromeDriver at: %s", driverPath)

	l.binary = findChromeBinary(l.cfg.BinaryPath)
	if l.binary != "" {
		l.logger.Infof("Using Chrome binary at: %s", l.binary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, l.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to start chromedriver: %w", err)
	}
	l.service = service
	return nil
}

// NewSession - opens a fresh Chrome session on the shared driver service
func (l *seleniumLauncher) NewSession(ctx context.Context) (interfaces.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.ensureService(); err != nil {
		return nil, err
	}

	wd, err := selenium.NewRemote(chromeCapabilities(l.cfg, l.binary, l.downloads), fmt.Sprintf("http://localhost:%d/wd/hub", l.cfg.Port))
	if err != nil {
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	l.logger.Debug("Selenium session started")
	return &seleniumDriver{wd: wd}, nil
}

// Close - stops the ChromeDriver service
func (l *seleniumLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.service == nil {
		return nil
	}
	err := l.service.Stop()
	l.service = nil
	if err != nil {
		return fmt.Errorf("failed to stop chromedriver: %w", err)
	}
	return nil
}

// seleniumDriver adapts a tebeka/selenium session to interfaces.Driver
type seleniumDriver struct {
	wd       selenium.WebDriver
	implicit time.Duration
}

// seleniumError - maps WebDriver protocol errors onto the shared sentinels
func seleniumError(err error) error {
	if err == nil {
		return nil
	}

	code := ""
	var se *selenium.Error
	if errors.As(err, &se) {
		code = se.Err
	}
	msg := strings.ToLower(err.Error())

	switch {
	case code == "no such element" || strings.Contains(msg, "no such element"):
		return fmt.Errorf("%w: %v", entities.ErrNoSuchElement, err)
	case code == "stale element reference" || strings.Contains(msg, "stale element reference"):
		return fmt.Errorf("%w: %v", entities.ErrStaleElement, err)
	case code == "no such alert" || strings.Contains(msg, "no such alert"):
		return fmt.Errorf("%w: %v", entities.ErrNoAlert, err)
	}
	return err
}

func (d *seleniumDriver) Navigate(url string) error {
	return seleniumError(d.wd.Get(url))
}

func (d *seleniumDriver) CurrentURL() (string, error) {
	url, err := d.wd.CurrentURL()
	return url, seleniumError(err)
}

func (d *seleniumDriver) Title() (string, error) {
	title, err := d.wd.Title()
	return title, seleniumError(err)
}

func (d *seleniumDriver) PageSource() (string, error) {
	src, err := d.wd.PageSource()
	return src, seleniumError(err)
}

func (d *seleniumDriver) Back() error {
	return seleniumError(d.wd.Back())
}

func (d *seleniumDriver) Forward() error {
	return seleniumError(d.wd.Forward())
}

func (d *seleniumDriver) Refresh() error {
	return seleniumError(d.wd.Refresh())
}

func (d *seleniumDriver) Cookies() ([]entities.Cookie, error) {
	raw, err := d.wd.GetCookies()
	if err != nil {
		return nil, seleniumError(err)
	}
	cookies := make([]entities.Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, fromSeleniumCookie(c))
	}
	return cookies, nil
}

func (d *seleniumDriver) AddCookie(cookie entities.Cookie) error {
	return seleniumError(d.wd.AddCookie(toSeleniumCookie(cookie)))
}

func fromSeleniumCookie(c selenium.Cookie) entities.Cookie {
	cookie := entities.Cookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: c.Domain,
		Path:   c.Path,
		Secure: c.Secure,
	}
	if c.Expiry > 0 {
		cookie.Expiry = time.Unix(int64(c.Expiry), 0).UTC()
	}
	return cookie
}

// toSeleniumCookie - the WebDriver cookie of this client carries no httpOnly
// flag, so restored cookies are always script-visible
func toSeleniumCookie(c entities.Cookie) *selenium.Cookie {
	cookie := &selenium.Cookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: c.Domain,
		Path:   c.Path,
		Secure: c.Secure,
	}
	if !c.Expiry.IsZero() && c.Expiry.Unix() > 0 {
		cookie.Expiry = uint(c.Expiry.Unix())
	}
	return cookie
}

// chromeCapabilities - requests a W3C session so element references come back
// under the W3C key, with downloads saved to downloads without a prompt
func chromeCapabilities(cfg config.BrowserConfig, binary, downloads string) selenium.Capabilities {
	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	chromeCaps := chrome.Capabilities{
		Args: chromeArgs(cfg),
		W3C:  true,
	}
	if downloads != "" {
		chromeCaps.Prefs = map[string]interface{}{
			"download.default_directory":   downloads,
			"download.prompt_for_download": false,
		}
	}
	if binary != "" {
		chromeCaps.Path = binary
	}
	caps.AddChrome(chromeCaps)
	return caps
}

func (d *seleniumDriver) WindowHandles() ([]string, error) {
	handles, err := d.wd.WindowHandles()
	return handles, seleniumError(err)
}

func (d *seleniumDriver) CurrentWindowHandle() (string, error) {
	handle, err := d.wd.CurrentWindowHandle()
	return handle, seleniumError(err)
}

func (d *seleniumDriver) SwitchWindow(handle string) error {
	return seleniumError(d.wd.SwitchWindow(handle))
}

func (d *seleniumDriver) CloseWindow() error {
	return seleniumError(d.wd.Close())
}

func (d *seleniumDriver) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		return seleniumError(d.wd.SwitchFrame(nil))
	}
	el, ok := frame.(*seleniumElement)
	if !ok {
		return fmt.Errorf("frame element of type %T does not belong to this session", frame)
	}
	return seleniumError(d.wd.SwitchFrame(el.we))
}

func (d *seleniumDriver) AcceptAlert() error {
	return seleniumError(d.wd.AcceptAlert())
}

func (d *seleniumDriver) DismissAlert() error {
	return seleniumError(d.wd.DismissAlert())
}

func (d *seleniumDriver) AlertText() (string, error) {
	text, err := d.wd.AlertText()
	return text, seleniumError(err)
}

func (d *seleniumDriver) SetAlertText(text string) error {
	return seleniumError(d.wd.SetAlertText(text))
}

// ExecuteScript - runs script and decodes element results into Element handles
func (d *seleniumDriver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	unwrapped := make([]interface{}, len(args))
	for i, arg := range args {
		if el, ok := arg.(*seleniumElement); ok {
			unwrapped[i] = el.we
			continue
		}
		unwrapped[i] = arg
	}

	raw, err := d.wd.ExecuteScriptRaw(script, unwrapped)
	if err != nil {
		return nil, seleniumError(err)
	}
	return d.decodeScriptResult(raw)
}

func (d *seleniumDriver) decodeScriptResult(raw []byte) (interface{}, error) {
	var reply struct {
		Value interface{} `json:"value"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode script result: %w", err)
	}

	if m, ok := reply.Value.(map[string]interface{}); ok && isElementReference(m) {
		we, err := d.wd.DecodeElement(raw)
		if err != nil {
			return nil, seleniumError(err)
		}
		return &seleniumElement{we: we}, nil
	}
	return reply.Value, nil
}

func isElementReference(m map[string]interface{}) bool {
	for _, key := range []string{w3cElementKey, legacyElementKey} {
		if id, ok := m[key].(string); ok && id != "" {
			return true
		}
	}
	return false
}

func (d *seleniumDriver) FindElement(locator entities.ResolvedLocator) (interfaces.Element, error) {
	we, err := d.wd.FindElement(selenium.ByXPATH, locator.String())
	if err != nil {
		return nil, seleniumError(err)
	}
	return &seleniumElement{we: we}, nil
}

func (d *seleniumDriver) FindElements(locator entities.ResolvedLocator) ([]interfaces.Element, error) {
	found, err := d.wd.FindElements(selenium.ByXPATH, locator.String())
	if err != nil {
		err = seleniumError(err)
		if errors.Is(err, entities.ErrNoSuchElement) {
			return nil, nil
		}
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(found))
	for _, we := range found {
		elements = append(elements, &seleniumElement{we: we})
	}
	return elements, nil
}

func (d *seleniumDriver) ImplicitWait() time.Duration {
	return d.implicit
}

func (d *seleniumDriver) SetImplicitWait(timeout time.Duration) error {
	if err := d.wd.SetImplicitWaitTimeout(timeout); err != nil {
		return seleniumError(err)
	}
	d.implicit = timeout
	return nil
}

func (d *seleniumDriver) Screenshot() ([]byte, error) {
	png, err := d.wd.Screenshot()
	return png, seleniumError(err)
}

func (d *seleniumDriver) Quit() error {
	return seleniumError(d.wd.Quit())
}

// seleniumKeys maps named keys onto WebDriver key codes
var seleniumKeys = map[entities.Key]string{
	entities.KeyEnter:     selenium.EnterKey,
	entities.KeyTab:       selenium.TabKey,
	entities.KeyEscape:    selenium.EscapeKey,
	entities.KeyBackspace: selenium.BackspaceKey,
	entities.KeyDelete:    selenium.DeleteKey,
	entities.KeyArrowDown: selenium.DownArrowKey,
	entities.KeyArrowUp:   selenium.UpArrowKey,
	entities.KeyPageDown:  selenium.PageDownKey,
	entities.KeyPageUp:    selenium.PageUpKey,
	entities.KeyHome:      selenium.HomeKey,
	entities.KeyEnd:       selenium.EndKey,
}

// seleniumElement adapts selenium.WebElement to interfaces.Element
type seleniumElement struct {
	we selenium.WebElement
}

func (e *seleniumElement) Click() error {
	return seleniumError(e.we.Click())
}

func (e *seleniumElement) SendKeys(text string) error {
	return seleniumError(e.we.SendKeys(text))
}

func (e *seleniumElement) Clear() error {
	return seleniumError(e.we.Clear())
}

func (e *seleniumElement) Text() (string, error) {
	text, err := e.we.Text()
	return text, seleniumError(err)
}

func (e *seleniumElement) Attribute(name string) (string, error) {
	value, err := e.we.GetAttribute(name)
	if err != nil {
		// tebeka reports a null attribute as an error
		if strings.Contains(err.Error(), "nil return value") {
			return "", nil
		}
		return "", seleniumError(err)
	}
	return value, nil
}

func (e *seleniumElement) CSSValue(property string) (string, error) {
	value, err := e.we.CSSProperty(property)
	return value, seleniumError(err)
}

func (e *seleniumElement) IsDisplayed() (bool, error) {
	ok, err := e.we.IsDisplayed()
	return ok, seleniumError(err)
}

func (e *seleniumElement) IsEnabled() (bool, error) {
	ok, err := e.we.IsEnabled()
	return ok, seleniumError(err)
}

func (e *seleniumElement) IsSelected() (bool, error) {
	ok, err := e.we.IsSelected()
	return ok, seleniumError(err)
}

func (e *seleniumElement) Hover() error {
	return seleniumError(e.we.MoveTo(0, 0))
}

func (e *seleniumElement) PressKey(key entities.Key) error {
	code, ok := seleniumKeys[key]
	if !ok {
		return fmt.Errorf("unsupported key %q", key)
	}
	return seleniumError(e.we.SendKeys(code))
}
