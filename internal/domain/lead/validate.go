package lead

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation holds the outcome of a profile check. Errors is keyed by field
// name ("name", "email", "company").
type Validation struct {
	Valid  bool
	Errors map[string]string
}

// ValidateProfile checks the editable identity fields of a lead edit. Every
// rule is evaluated so all broken fields report their message at once.
func ValidateProfile(name, email, company string) Validation {
	errs := make(map[string]string)

	if strings.TrimSpace(name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}

	if strings.TrimSpace(company) == "" {
		errs["company"] = "Company is required"
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
