package interfaces

import (
	"context"
	"time"

	"storefront_automation/domain/entities"
)

// Driver is the browser session capability the automation layer is built on.
// Implementations own exactly one browser session with one active window
// and one active frame context.
type Driver interface {
	// Navigate loads url in the active window
	Navigate(url string) error

	CurrentURL() (string, error)
	Title() (string, error)
	PageSource() (string, error)

	Back() error
	Forward() error
	Refresh() error

	Cookies() ([]entities.Cookie, error)
	AddCookie(cookie entities.Cookie) error

	WindowHandles() ([]string, error)
	CurrentWindowHandle() (string, error)
	SwitchWindow(handle string) error
	// CloseWindow closes the active window; the caller must switch afterwards
	CloseWindow() error

	// SwitchFrame enters the frame element; nil returns to the top document
	SwitchFrame(frame Element) error

	AcceptAlert() error
	DismissAlert() error
	AlertText() (string, error)
	SetAlertText(text string) error

	// ExecuteScript runs script with Selenium semantics: arguments are
	// reachable through `arguments[i]` and the script returns with `return`
	ExecuteScript(script string, args ...interface{}) (interface{}, error)

	// FindElement returns the first match, polling up to the implicit wait
	FindElement(locator entities.ResolvedLocator) (Element, error)
	// FindElements returns all matches, polling up to the implicit wait
	// while there are none; an empty result is not an error
	FindElements(locator entities.ResolvedLocator) ([]Element, error)

	ImplicitWait() time.Duration
	SetImplicitWait(d time.Duration) error

	Screenshot() ([]byte, error)

	// Quit terminates the browser session
	Quit() error
}

// Element is a handle to a DOM node found by a Driver
type Element interface {
	Click() error
	SendKeys(text string) error
	Clear() error
	Text() (string, error)
	Attribute(name string) (string, error)
	CSSValue(property string) (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	Hover() error
	PressKey(key entities.Key) error
}

// SessionFactory opens browser sessions. One factory serves a whole run and
// may be used from several goroutines.
type SessionFactory interface {
	NewSession(ctx context.Context) (Driver, error)
	// Close releases resources shared by every session of the factory
	Close() error
}
