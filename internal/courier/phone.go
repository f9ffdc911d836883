package courier

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone = errors.New("Invalid phone number")

	nonDigits  = regexp.MustCompile(`\D`)
	localPhone = regexp.MustCompile(`^0\d{10}$`)
)

// NormalizePhone reduces a free-form Bangladeshi phone string to the local
// 11-digit format: strip non-digits, fold the 880 country code to a leading
// 0, left-pad a bare 10-digit subscriber number.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")

	switch {
	case strings.HasPrefix(digits, "880") && len(digits) == 13:
		digits = "0" + digits[3:]
	case len(digits) == 10 && !strings.HasPrefix(digits, "0"):
		digits = "0" + digits
	}

	if !localPhone.MatchString(digits) {
		return "", ErrInvalidPhone
	}
	return digits, nil
}
