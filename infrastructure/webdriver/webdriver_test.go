package webdriver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront_automation/domain/entities"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

func TestNewSessionFactory(t *testing.T) {
	logger := logging.Discard()

	f, err := NewSessionFactory(config.BrowserConfig{Backend: config.BackendSelenium}, t.TempDir(), logger)
	require.NoError(t, err)
	assert.IsType(t, &seleniumLauncher{}, f)

	f, err = NewSessionFactory(config.BrowserConfig{Backend: config.BackendPlaywright}, t.TempDir(), logger)
	require.NoError(t, err)
	assert.IsType(t, &playwrightLauncher{}, f)

	_, err = NewSessionFactory(config.BrowserConfig{Backend: "lynx"}, "", logger)
	assert.Error(t, err)
}

func TestLauncherCloseWithoutSessions(t *testing.T) {
	logger := logging.Discard()
	assert.NoError(t, NewSeleniumLauncher(config.BrowserConfig{}, "", logger).Close())
	assert.NoError(t, NewPlaywrightLauncher(config.BrowserConfig{}, "", logger).Close())
}

func TestSeleniumErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"protocol no such element", &selenium.Error{Err: "no such element", Message: "Unable to locate element"}, entities.ErrNoSuchElement},
		{"protocol stale", &selenium.Error{Err: "stale element reference", Message: "element is not attached"}, entities.ErrStaleElement},
		{"protocol alert", &selenium.Error{Err: "no such alert", Message: "no such alert"}, entities.ErrNoAlert},
		{"legacy message", errors.New("unknown error: stale element reference: node detached"), entities.ErrStaleElement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, seleniumError(tt.err), tt.want)
		})
	}

	other := errors.New("session deleted")
	assert.Same(t, other, seleniumError(other))
	assert.NoError(t, seleniumError(nil))
}

func TestSeleniumCookieConversion(t *testing.T) {
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	in := entities.Cookie{
		Name:     ".Nop.Customer",
		Value:    "abc",
		Domain:   "demo.nopcommerce.com",
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		Expiry:   expiry,
	}

	sc := toSeleniumCookie(in)
	assert.Equal(t, uint(expiry.Unix()), sc.Expiry)

	want := in
	want.HTTPOnly = false
	assert.Equal(t, want, fromSeleniumCookie(*sc))

	session := toSeleniumCookie(entities.Cookie{Name: "s", Value: "v"})
	assert.Zero(t, session.Expiry)
	assert.True(t, fromSeleniumCookie(*session).Expiry.IsZero())
}

func TestChromeCapabilities(t *testing.T) {
	caps := chromeCapabilities(config.BrowserConfig{}, "/opt/chrome/chrome", "/tmp/downloads")
	chromeCaps, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok)
	assert.True(t, chromeCaps.W3C)
	assert.Equal(t, "/opt/chrome/chrome", chromeCaps.Path)
	assert.Equal(t, "chrome", caps["browserName"])
	assert.Equal(t, "/tmp/downloads", chromeCaps.Prefs["download.default_directory"])
	assert.Equal(t, false, chromeCaps.Prefs["download.prompt_for_download"])

	caps = chromeCapabilities(config.BrowserConfig{}, "", "")
	chromeCaps = caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	assert.Nil(t, chromeCaps.Prefs)
	assert.Empty(t, chromeCaps.Path)
}

func TestDownloadTargetStaysInFolder(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/downloads", "invoice.pdf"), downloadTarget("/tmp/downloads", "invoice.pdf"))
	assert.Equal(t, filepath.Join("/tmp/downloads", "passwd"), downloadTarget("/tmp/downloads", "../../etc/passwd"))
}

// decodingWebDriver answers DecodeElement only
type decodingWebDriver struct {
	selenium.WebDriver
	decoded [][]byte
}

func (w *decodingWebDriver) DecodeElement(data []byte) (selenium.WebElement, error) {
	w.decoded = append(w.decoded, data)
	return fakeWebElement{}, nil
}

type fakeWebElement struct {
	selenium.WebElement
}

func TestDecodeScriptResultElementReferences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"w3c", `{"value":{"element-6066-11e4-a52e-4f735466cecf":"f.1"}}`},
		{"legacy", `{"value":{"ELEMENT":"0.123-1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := &decodingWebDriver{}
			d := &seleniumDriver{wd: wd}
			got, err := d.decodeScriptResult([]byte(tt.raw))
			require.NoError(t, err)
			assert.IsType(t, &seleniumElement{}, got)
			assert.Len(t, wd.decoded, 1)
		})
	}
}

func TestDecodeScriptResultPlainValues(t *testing.T) {
	wd := &decodingWebDriver{}
	d := &seleniumDriver{wd: wd}

	got, err := d.decodeScriptResult([]byte(`{"value":{"ELEMENT":"","title":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ELEMENT": "", "title": "x"}, got)

	got, err = d.decodeScriptResult([]byte(`{"value":"complete"}`))
	require.NoError(t, err)
	assert.Equal(t, "complete", got)
	assert.Empty(t, wd.decoded)

	_, err = d.decodeScriptResult([]byte(`not json`))
	assert.Error(t, err)
}

func TestChromeArgs(t *testing.T) {
	args := chromeArgs(config.BrowserConfig{Headless: true, WindowWidth: 1280, WindowHeight: 720})
	assert.Contains(t, args, "--headless=new")
	assert.Contains(t, args, "--window-size=1280,720")

	args = chromeArgs(config.BrowserConfig{})
	assert.NotContains(t, args, "--headless=new")
	for _, a := range args {
		assert.NotContains(t, a, "--window-size")
	}
}

func TestFindChromeDriverConfiguredPath(t *testing.T) {
	_, err := findChromeDriver(filepath.Join(t.TempDir(), "missing-chromedriver"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "chromedriver")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	got, err := findChromeDriver(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestPlaywrightErrorMapping(t *testing.T) {
	err := playwrightError(errors.New("elementHandle.click: Element is not attached to the DOM"))
	assert.ErrorIs(t, err, entities.ErrStaleElement)

	other := errors.New("timeout 30000ms exceeded")
	assert.Same(t, other, playwrightError(other))
}

func TestWrapScriptKeepsArguments(t *testing.T) {
	got := wrapScript("return arguments[0];")
	assert.Equal(t, "(args) => (function() {\nreturn arguments[0];\n}).apply(null, args)", got)
}
