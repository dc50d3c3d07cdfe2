package util

import (
	"errors"
	"net/mail"
	"strings"
)

// ErrInvalidEmail is returned when an address fails syntax validation.
var ErrInvalidEmail = errors.New("invalid email address")

// NormalizeEmail validates the address syntax and returns the normalized
// form: surrounding whitespace removed and the domain part lowercased. The
// local part is preserved as given.
func NormalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || at == len(addr.Address)-1 {
		return "", ErrInvalidEmail
	}
	return addr.Address[:at+1] + strings.ToLower(addr.Address[at+1:]), nil
}
