package crypto

import "strings"

// maskRun is the constant-width redaction inserted between the preserved
// head and tail of a masked value, regardless of input length.
const maskRun = "****"

// MaskPhone keeps the first 3 and last 4 characters of a phone number.
// Values too short to preserve both ends are fully redacted.
func MaskPhone(v string) string {
	r := []rune(v)
	if len(r) < 8 {
		return maskRun
	}
	return string(r[:3]) + maskRun + string(r[len(r)-4:])
}

// MaskIDNumber keeps the first 4 and last 4 characters of a national
// identity number.
func MaskIDNumber(v string) string {
	r := []rune(v)
	if len(r) < 9 {
		return maskRun
	}
	return string(r[:4]) + maskRun + string(r[len(r)-4:])
}

// MaskBankAccount keeps only the last 4 characters of an account number.
func MaskBankAccount(v string) string {
	r := []rune(v)
	if len(r) < 5 {
		return maskRun
	}
	return maskRun + string(r[len(r)-4:])
}

// MaskName keeps the leading character (family name) and redacts the rest
// with a fixed-width run.
func MaskName(v string) string {
	v = strings.TrimSpace(v)
	r := []rune(v)
	if len(r) == 0 {
		return maskRun
	}
	return string(r[:1]) + "**"
}
