package interfaces

import "storefront_automation/domain/entities"

// Storage persists session state between scenario runs
type Storage interface {
	// SaveCookies stores the cookie set of a logged in session under key
	SaveCookies(key string, cookies []entities.Cookie) error

	// LoadCookies returns the cookies stored under key, or nil when absent
	LoadCookies(key string) ([]entities.Cookie, error)

	// AppendHistory appends finished results to the run history
	AppendHistory(results []entities.ScenarioResult) error

	// LoadHistory returns every recorded result
	LoadHistory() ([]entities.ScenarioResult, error)
}
