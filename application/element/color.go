package element

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"storefront_automation/domain/entities"
)

var (
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(?:\d*\.)?\d+\s*)?\)$`)
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// HexColor converts a computed CSS color such as "rgba(74, 178, 241, 1)"
// to "#4ab2f1". The alpha channel is dropped. Hex input is normalized to
// the lower-case six digit form.
func HexColor(value string) (string, error) {
	value = strings.TrimSpace(value)
	if m := hexPattern.FindStringSubmatch(value); m != nil {
		digits := strings.ToLower(m[1])
		if len(digits) == 3 {
			digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
		}
		return "#" + digits, nil
	}

	m := rgbPattern.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return "", fmt.Errorf("unsupported color %q", value)
	}
	var channels [3]uint8
	for i := range channels {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return "", fmt.Errorf("color %q: channel %q out of range", value, m[i+1])
		}
		channels[i] = uint8(n)
	}
	return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2]), nil
}

// CSSColorHex - reads a color property of loc and converts it to hex
func (a *Actions) CSSColorHex(loc entities.ResolvedLocator, property string) (string, error) {
	value, err := a.CSSValue(loc, property)
	if err != nil {
		return "", err
	}
	return HexColor(value)
}
