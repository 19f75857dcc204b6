// Package inputval validates user-supplied form input before it is
// sent to the auth backend.
package inputval

import (
	"net/mail"
	"strings"
)

// IsValidEmail reports whether the string is a plausible RFC 5322
// address. Display-name forms ("Name <a@b.c>") are rejected; the
// register and login forms want a bare address.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}

	return true
}
