package entities

import "time"

// Cookie is a browser cookie independent of the driver backend
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain,omitempty"`
	Path     string    `json:"path,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
	Expiry   time.Time `json:"expiry,omitempty"`
}

// Key is a named keyboard key understood by every driver backend
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyTab       Key = "Tab"
	KeyEscape    Key = "Escape"
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyPageDown  Key = "PageDown"
	KeyPageUp    Key = "PageUp"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
)
