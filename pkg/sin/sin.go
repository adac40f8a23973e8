// Package sin parses and classifies Canadian Social Insurance Numbers.
//
// A SIN is a nine digit identifier whose last digit is a Luhn-style check
// digit. Business numbers share the same namespace, so a structurally valid
// SIN is not necessarily a person. Validation here is purely structural:
// this package never consults a registry and cannot tell whether a number
// was actually issued.
package sin

import "errors"

// Parse errors. The set may grow (new structural rules, for example), so
// callers should match with errors.Is rather than assuming exhaustiveness.
var (
	// ErrTooShort means fewer than nine digit characters were found.
	ErrTooShort = errors.New("sin: fewer than 9 digits")
	// ErrTooLong means more than nine digit characters were found.
	ErrTooLong = errors.New("sin: more than 9 digits")
	// ErrInvalidChecksum means nine digits were found but the check digit
	// does not match.
	ErrInvalidChecksum = errors.New("sin: invalid checksum")
)

// SIN is a validated social insurance number.
//
// Invariant: every digit is in [0,9] and the checksum holds. The only way to
// obtain a SIN is Parse, so an invalid value cannot be constructed. The zero
// value is "000000000", which happens to be checksum-valid; treat it like any
// other value. SINs are immutable and safe to share across goroutines.
type SIN struct {
	digits [9]uint8
}

// Parse constructs a SIN from free-form input.
//
// Every decimal digit in s is kept in order of appearance; all other
// characters (spaces, dashes, letters, punctuation) are discarded, so
// "046-454-286" and "046454286" parse identically. Separators are never an
// error on their own.
//
// Errors: ErrTooShort or ErrTooLong when the digit count is not exactly
// nine, ErrInvalidChecksum when the Luhn check fails. There is no partial
// success: either a fully validated SIN is returned or a typed error.
func Parse(s string) (SIN, error) {
	var (
		digits [9]uint8
		n      int
	)
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if n == len(digits) {
			return SIN{}, ErrTooLong
		}
		digits[n] = uint8(r - '0')
		n++
	}
	if n < len(digits) {
		return SIN{}, ErrTooShort
	}
	if !checksumOK(digits) {
		return SIN{}, ErrInvalidChecksum
	}
	return SIN{digits: digits}, nil
}

// checksumOK applies the SIN variant of the Luhn check: digits at even
// 0-based positions are taken as-is, digits at odd positions are doubled,
// and any doubled value above 9 is reduced to the sum of its decimal digits.
// The number validates when the total is divisible by ten.
func checksumOK(digits [9]uint8) bool {
	sum := 0
	for i, d := range digits {
		v := int(d)
		if i%2 == 1 {
			v *= 2
			if v > 9 {
				// Max doubled value is 18, so the digit sum
				// equals v%10 + 1.
				v = v%10 + 1
			}
		}
		sum += v
	}
	return sum%10 == 0
}

// Digits returns the nine digits in positional order, most significant first.
func (s SIN) Digits() [9]uint8 {
	return s.digits
}

// String renders the contiguous nine digit form, e.g. "046454286".
func (s SIN) String() string {
	var b [9]byte
	for i, d := range s.digits {
		b[i] = '0' + d
	}
	return string(b[:])
}

// Formatted renders the conventional dash-grouped 3-3-3 form,
// e.g. "046-454-286".
func (s SIN) Formatted() string {
	var b [11]byte
	j := 0
	for i, d := range s.digits {
		if i == 3 || i == 6 {
			b[j] = '-'
			j++
		}
		b[j] = '0' + d
		j++
	}
	return string(b[:])
}
