package cli

import "regexp"

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isEmailValid is the same basic shape check the registration form has
// always done. Anything stricter is the backend's job.
func isEmailValid(email string) bool {
	return emailRx.MatchString(email)
}
