package valueobject

import (
	"errors"
	"strings"
	"unicode"
)

// Phone is a phone number kept as a country calling code plus a national
// number. Forms send the two parts separately and the database keeps them in
// their own columns, next to the joined form used for search.
type Phone struct {
	CountryCode string // digits only, without "+"
	Number      string // digits only
}

var (
	ErrInvalidPhoneNumber = errors.New("phone number must contain between 4 and 15 digits")
	ErrInvalidCountryCode = errors.New("country code must contain between 1 and 4 digits")
	ErrUnknownCountryCode = errors.New("phone number does not start with a known country code")
	ErrPhoneMissingPrefix = errors.New("phone number must start with + or 00")
)

// knownCallingCodes lists the calling codes ParsePhone can split on.
// Longest match wins, so "1" never shadows "1242" style codes.
var knownCallingCodes = []string{
	"1", "7", "20", "27", "30", "31", "32", "33", "34", "39", "41", "44", "49", "55", "81", "86", "90", "91",
	"211", "212", "213", "216", "221", "223", "224", "225", "226", "227", "228", "229",
	"233", "234", "235", "236", "237", "240", "241", "242", "243", "250", "254", "255", "256",
}

// NewPhone normalizes and validates a country code and national number.
// Spaces, dashes, dots and parentheses are dropped; the country code may be
// given as "+237", "00237" or "237". An empty country code is allowed.
func NewPhone(countryCode, number string) (Phone, error) {
	code := digitsOnly(strings.TrimPrefix(strings.TrimSpace(countryCode), "+"))
	code = strings.TrimPrefix(code, "00")
	num := digitsOnly(number)

	if code != "" && len(code) > 4 {
		return Phone{}, ErrInvalidCountryCode
	}
	if len(num) < 4 || len(num) > 15 {
		return Phone{}, ErrInvalidPhoneNumber
	}
	return Phone{CountryCode: code, Number: num}, nil
}

// ParsePhone splits an international number such as "+237 699 11 22 33" back
// into its calling code and national number.
func ParsePhone(full string) (Phone, error) {
	s := strings.TrimSpace(full)
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "00"):
		s = s[2:]
	default:
		return Phone{}, ErrPhoneMissingPrefix
	}
	digits := digitsOnly(s)

	best := ""
	for _, code := range knownCallingCodes {
		if strings.HasPrefix(digits, code) && len(code) > len(best) {
			best = code
		}
	}
	if best == "" {
		return Phone{}, ErrUnknownCountryCode
	}
	return NewPhone(best, digits[len(best):])
}

// String returns the joined international form, "+237699112233", or the bare
// national number when no country code is known.
func (p Phone) String() string {
	if p.CountryCode == "" {
		return p.Number
	}
	return "+" + p.CountryCode + p.Number
}

// IsZero reports whether the phone is unset
func (p Phone) IsZero() bool {
	return p.Number == ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneFromColumns rebuilds a Phone from its stored parts. Rows that only
// carry the joined form fall back to PhoneFromStored.
func PhoneFromColumns(countryCode, number, joined string) Phone {
	if number != "" {
		return Phone{CountryCode: countryCode, Number: number}
	}
	return PhoneFromStored(joined)
}

// PhoneFromStored rebuilds a Phone from its joined form. The split is only
// exact for calling codes in knownCallingCodes; numbers saved without an
// international prefix come back with an empty country code.
func PhoneFromStored(stored string) Phone {
	if stored == "" {
		return Phone{}
	}
	if p, err := ParsePhone(stored); err == nil {
		return p
	}
	return Phone{Number: digitsOnly(stored)}
}
