// Package fakedriver provides an in-memory interfaces.Driver for tests.
// Elements are registered against the exact locator expression the code
// under test resolves, so a test reads like the locator table it exercises.
package fakedriver

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
)

// ScriptCall records one ExecuteScript invocation
type ScriptCall struct {
	Script string
	Args   []interface{}
}

// ScriptHandler answers ExecuteScript calls
type ScriptHandler func(script string, args []interface{}) (interface{}, error)

// Window is a fake browser window
type Window struct {
	Handle string
	Title  string
	URL    string
}

// Driver is an in-memory browser session
type Driver struct {
	mu sync.Mutex

	elements map[entities.ResolvedLocator][]*Element
	lookups  []entities.ResolvedLocator

	implicit        time.Duration
	implicitHistory []time.Duration
	implicitErr     error

	cookies   []entities.Cookie
	refreshes int
	visited   []string
	back      int
	forward   int

	windows []*Window
	current string
	frame   interfaces.Element

	alertText string
	alertOpen bool
	alertSent string
	accepted  int
	dismissed int

	scripts       []ScriptCall
	scriptHandler ScriptHandler

	source     string
	screenshot []byte
	quit       bool

	// OnRefresh runs after every Refresh, with the driver unlocked
	OnRefresh func()
}

// New - creates a fake driver with a single window titled "Home"
func New() *Driver {
	return &Driver{
		elements:   make(map[entities.ResolvedLocator][]*Element),
		windows:    []*Window{{Handle: "main", Title: "Home"}},
		current:    "main",
		screenshot: []byte("\x89PNG fake"),
	}
}

var _ interfaces.Driver = (*Driver)(nil)

// Put - replaces the elements matched by locator
func (d *Driver) Put(locator entities.ResolvedLocator, els ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[locator] = els
}

// Remove - drops every element matched by locator
func (d *Driver) Remove(locator entities.ResolvedLocator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, locator)
}

// Lookups - returns every locator passed to FindElement(s), in order
func (d *Driver) Lookups() []entities.ResolvedLocator {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entities.ResolvedLocator(nil), d.lookups...)
}

// ImplicitHistory - returns every value passed to SetImplicitWait
func (d *Driver) ImplicitHistory() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.implicitHistory...)
}

// FailSetImplicitWait - makes the next SetImplicitWait calls fail with err
func (d *Driver) FailSetImplicitWait(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicitErr = err
}

// HandleScripts - installs the ExecuteScript responder
func (d *Driver) HandleScripts(h ScriptHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scriptHandler = h
}

// Scripts - returns every script executed so far
func (d *Driver) Scripts() []ScriptCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ScriptCall(nil), d.scripts...)
}

// AddWindow - opens another window
func (d *Driver) AddWindow(handle, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows = append(d.windows, &Window{Handle: handle, Title: title})
}

// OpenAlert - raises an alert with the given text
func (d *Driver) OpenAlert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alertText = text
	d.alertOpen = true
	d.alertSent = ""
}

// AlertState - reports how alerts were handled
func (d *Driver) AlertState() (open bool, accepted, dismissed int, sent string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alertOpen, d.accepted, d.dismissed, d.alertSent
}

// Refreshes - returns how many times the page was reloaded
func (d *Driver) Refreshes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshes
}

// Visited - returns the navigation history
func (d *Driver) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// Frame - returns the active frame element, nil for the top document
func (d *Driver) Frame() interfaces.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// SetPageSource - sets the value returned by PageSource
func (d *Driver) SetPageSource(src string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = src
}

// Quitted - reports whether Quit was called
func (d *Driver) Quitted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}

func (d *Driver) Navigate(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visited = append(d.visited, url)
	if w := d.window(); w != nil {
		w.URL = url
	}
	return nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.window(); w != nil {
		return w.URL, nil
	}
	return "", fmt.Errorf("no such window")
}

func (d *Driver) Title() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.window(); w != nil {
		return w.Title, nil
	}
	return "", fmt.Errorf("no such window")
}

func (d *Driver) PageSource() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source, nil
}

func (d *Driver) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.back++
	return nil
}

func (d *Driver) Forward() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forward++
	return nil
}

func (d *Driver) Refresh() error {
	d.mu.Lock()
	d.refreshes++
	hook := d.OnRefresh
	d.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (d *Driver) Cookies() ([]entities.Cookie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entities.Cookie(nil), d.cookies...), nil
}

func (d *Driver) AddCookie(cookie entities.Cookie) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range d.cookies {
		if c.Name == cookie.Name {
			d.cookies[i] = cookie
			return nil
		}
	}
	d.cookies = append(d.cookies, cookie)
	return nil
}

func (d *Driver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	handles := make([]string, 0, len(d.windows))
	for _, w := range d.windows {
		handles = append(handles, w.Handle)
	}
	return handles, nil
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, nil
}

func (d *Driver) SwitchWindow(handle string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.windows {
		if w.Handle == handle {
			d.current = handle
			d.frame = nil
			return nil
		}
	}
	return fmt.Errorf("no such window: %s", handle)
}

func (d *Driver) CloseWindow() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range d.windows {
		if w.Handle == d.current {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no such window: %s", d.current)
}

func (d *Driver) SwitchFrame(frame interfaces.Element) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = frame
	return nil
}

func (d *Driver) AcceptAlert() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.alertOpen {
		return entities.ErrNoAlert
	}
	d.alertOpen = false
	d.accepted++
	return nil
}

func (d *Driver) DismissAlert() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.alertOpen {
		return entities.ErrNoAlert
	}
	d.alertOpen = false
	d.dismissed++
	return nil
}

func (d *Driver) AlertText() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.alertOpen {
		return "", entities.ErrNoAlert
	}
	return d.alertText, nil
}

func (d *Driver) SetAlertText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.alertOpen {
		return entities.ErrNoAlert
	}
	d.alertSent = text
	return nil
}

func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	d.mu.Lock()
	d.scripts = append(d.scripts, ScriptCall{Script: script, Args: args})
	h := d.scriptHandler
	d.mu.Unlock()
	if h == nil {
		return nil, nil
	}
	return h(script, args)
}

func (d *Driver) FindElement(locator entities.ResolvedLocator) (interfaces.Element, error) {
	els, err := d.FindElements(locator)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrNoSuchElement, locator)
	}
	return els[0], nil
}

func (d *Driver) FindElements(locator entities.ResolvedLocator) ([]interfaces.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups = append(d.lookups, locator)
	found := d.elements[locator]
	out := make([]interfaces.Element, 0, len(found))
	for _, el := range found {
		out = append(out, el)
	}
	return out, nil
}

func (d *Driver) ImplicitWait() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicit
}

func (d *Driver) SetImplicitWait(wait time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.implicitErr != nil {
		return d.implicitErr
	}
	d.implicit = wait
	d.implicitHistory = append(d.implicitHistory, wait)
	return nil
}

func (d *Driver) Screenshot() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screenshot, nil
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quit = true
	return nil
}

func (d *Driver) window() *Window {
	for _, w := range d.windows {
		if w.Handle == d.current {
			return w
		}
	}
	return nil
}

// Element is a fake DOM node
type Element struct {
	mu sync.Mutex

	text      string
	attrs     map[string]string
	css       map[string]string
	displayed bool
	enabled   bool
	selected  bool
	checkable bool
	stale     bool

	clicks  int
	hovered int
	keys    []entities.Key

	// OnClick runs after every successful Click, with the element unlocked
	OnClick func()
}

var _ interfaces.Element = (*Element)(nil)

// NewElement - creates a displayed, enabled element with the given text
func NewElement(text string) *Element {
	return &Element{
		text:      text,
		attrs:     make(map[string]string),
		css:       make(map[string]string),
		displayed: true,
		enabled:   true,
	}
}

// NewCheckbox - creates a checkbox whose clicks toggle its selection
func NewCheckbox(checked bool) *Element {
	el := NewElement("")
	el.checkable = true
	el.selected = checked
	return el
}

// Hidden - marks the element as not displayed
func (e *Element) Hidden() *Element {
	e.SetDisplayed(false)
	return e
}

// Disabled - marks the element as not enabled
func (e *Element) Disabled() *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = false
	return e
}

// WithAttr - sets an attribute
func (e *Element) WithAttr(name, value string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
	return e
}

// WithCSS - sets a computed style property
func (e *Element) WithCSS(property, value string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.css[property] = value
	return e
}

// SetDisplayed - changes visibility
func (e *Element) SetDisplayed(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.displayed = v
}

// SetEnabled - changes enabled state
func (e *Element) SetEnabled(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = v
}

// SetSelected - changes selection state
func (e *Element) SetSelected(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = v
}

// SetText - changes the rendered text
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// MarkStale - detaches the element from the DOM
func (e *Element) MarkStale() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stale = true
}

// Clicks - returns the number of successful clicks
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// Hovers - returns the number of hovers
func (e *Element) Hovers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hovered
}

// Keys - returns the keys pressed on the element
func (e *Element) Keys() []entities.Key {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]entities.Key(nil), e.keys...)
}

// Value - returns the typed value
func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attrs["value"]
}

func (e *Element) Click() error {
	e.mu.Lock()
	if e.stale {
		e.mu.Unlock()
		return entities.ErrStaleElement
	}
	if !e.displayed || !e.enabled {
		e.mu.Unlock()
		return fmt.Errorf("element not interactable")
	}
	e.clicks++
	if e.checkable {
		e.selected = !e.selected
	}
	hook := e.OnClick
	e.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (e *Element) SendKeys(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return entities.ErrStaleElement
	}
	e.attrs["value"] += text
	return nil
}

func (e *Element) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return entities.ErrStaleElement
	}
	e.attrs["value"] = ""
	return nil
}

func (e *Element) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return "", entities.ErrStaleElement
	}
	return e.text, nil
}

func (e *Element) Attribute(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return "", entities.ErrStaleElement
	}
	return e.attrs[name], nil
}

func (e *Element) CSSValue(property string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return "", entities.ErrStaleElement
	}
	return e.css[strings.ToLower(property)], nil
}

func (e *Element) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return false, entities.ErrStaleElement
	}
	return e.displayed, nil
}

func (e *Element) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return false, entities.ErrStaleElement
	}
	return e.enabled, nil
}

func (e *Element) IsSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return false, entities.ErrStaleElement
	}
	return e.selected, nil
}

func (e *Element) Hover() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return entities.ErrStaleElement
	}
	e.hovered++
	return nil
}

func (e *Element) PressKey(key entities.Key) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale {
		return entities.ErrStaleElement
	}
	e.keys = append(e.keys, key)
	return nil
}
