// Package webdriver holds the browser backends behind interfaces.Driver
package webdriver

import (
	"fmt"

	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// NewSessionFactory - returns the session factory of the configured backend.
// Files the browser downloads land in downloads.
func NewSessionFactory(cfg config.BrowserConfig, downloads string, logger *logrus.Logger) (interfaces.SessionFactory, error) {
	switch cfg.Backend {
	case config.BackendSelenium:
		return NewSeleniumLauncher(cfg, downloads, logger), nil
	case config.BackendPlaywright:
		return NewPlaywrightLauncher(cfg, downloads, logger), nil
	default:
		return nil, fmt.Errorf("unknown browser backend %q", cfg.Backend)
	}
}
