package types

import "regexp"

// IsValidEmail is used by customer filters; request bodies go through the
// validator email tag instead
func IsValidEmail(email string) bool {
	return email != "" && emailRegex.MatchString(email)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
