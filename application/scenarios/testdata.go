package scenarios

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront_automation/application/pages"
)

// RandomEmail - returns an address that is unique per call
func RandomEmail(domain string) string {
	if domain == "" {
		domain = "mail.test"
	}
	local := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("auto%s@%s", local, domain)
}

// RandomRegistration - returns a complete, valid registration with a fresh email
func RandomRegistration(password string) pages.Registration {
	return pages.Registration{
		Gender:          pages.GenderMale,
		FirstName:       "Automation",
		LastName:        "FC",
		Day:             "10",
		Month:           "August",
		Year:            "1990",
		Email:           RandomEmail(""),
		Company:         "Automation FC",
		Password:        password,
		ConfirmPassword: password,
	}
}
