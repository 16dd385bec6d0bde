// Package sensitive applies the outbound data-protection decision: for
// every record carrying encrypted fields it decides, per field, whether
// the caller sees plaintext, a masked rendering, or nothing at all.
package sensitive

import (
	"strings"

	"kadrio.org/internal/crypto"
)

// Mode selects how a protected field is rendered when the caller is not
// entitled to the plaintext.
type Mode int

const (
	// ModeMask renders a partially redacted value.
	ModeMask Mode = iota
	// ModeOmit drops the field from the outgoing record entirely.
	ModeOmit
)

// FieldKind selects the masking transform for a protected field.
type FieldKind int

const (
	KindOpaque FieldKind = iota
	KindName
	KindPhone
	KindIDNumber
	KindBankAccount
)

// Field describes one protected attribute: its public name on outgoing
// records and the mask applied when plaintext is withheld.
type Field struct {
	Name string
	Kind FieldKind
}

// Carrier marks a type whose outbound representation holds encrypted
// fields. Implementations fix the protected field set at compile time
// instead of relying on runtime key inspection.
type Carrier interface {
	// SensitiveFields lists the protected attributes of the type.
	SensitiveFields() []Field
	// Document renders the value as a processable record, including the
	// internal *_encrypted and *_hash keys.
	Document() map[string]any
}

// Storage-form key suffixes. They are implementation detail and are
// always stripped from outgoing records.
const (
	suffixEncrypted = "_encrypted"
	suffixHash      = "_hash"
)

// maskedPlaceholder replaces a masked field whose ciphertext could not
// be decrypted; masking is a display concern and degrades instead of
// failing the response.
const maskedPlaceholder = "****"

// fieldKinds maps public field names seen on heterogeneous map payloads
// onto mask kinds. Unknown names fall back to the opaque placeholder.
var fieldKinds = map[string]FieldKind{
	"name":         KindName,
	"phone":        KindPhone,
	"id_number":    KindIDNumber,
	"bank_account": KindBankAccount,
}

func kindOf(name string) FieldKind {
	if kind, ok := fieldKinds[name]; ok {
		return kind
	}
	return KindOpaque
}

func maskValue(kind FieldKind, plaintext string) string {
	switch kind {
	case KindName:
		return crypto.MaskName(plaintext)
	case KindPhone:
		return crypto.MaskPhone(plaintext)
	case KindIDNumber:
		return crypto.MaskIDNumber(plaintext)
	case KindBankAccount:
		return crypto.MaskBankAccount(plaintext)
	default:
		return maskedPlaceholder
	}
}

func isInternalKey(key string) bool {
	return strings.HasSuffix(key, suffixEncrypted) || strings.HasSuffix(key, suffixHash)
}
