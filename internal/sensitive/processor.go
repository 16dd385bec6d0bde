package sensitive

import (
	"fmt"
	"strings"

	"kadrio.org/internal/access"
	"kadrio.org/internal/crypto"
	"kadrio.org/internal/obs"
)

// Ownership keys recognized on processable records. The department and
// identity of the record's owner drive the reveal decision.
const (
	keyRecordID     = "id"
	keyEmployeeID   = "employee_id"
	keyDepartmentID = "department_id"
)

// ProcessRecord applies the per-field protection decision to one record.
//
// A field is revealed in plaintext only when the caller owns the record,
// or holds the sensitive-view flag and the record falls inside the
// caller's scope. This check is the authoritative enforcement point: the
// query-level scope filter is an optimization, and a call path that
// skipped it still cannot leak plaintext here. All *_encrypted and
// *_hash keys are stripped from the output regardless of branch.
//
// Decryption failure on a mandatory reveal propagates; failure while
// masking degrades to a placeholder.
func ProcessRecord(doc map[string]any, ac access.Context, mode Mode) (map[string]any, error) {
	if doc == nil {
		return nil, nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if isInternalKey(key) {
			continue
		}
		out[key] = value
	}

	reveal := canReveal(ac, doc)
	for key, value := range doc {
		if !strings.HasSuffix(key, suffixEncrypted) {
			continue
		}
		name := strings.TrimSuffix(key, suffixEncrypted)
		ciphertext, ok := value.(string)
		if !ok || strings.TrimSpace(ciphertext) == "" {
			continue
		}
		if reveal {
			plaintext, err := crypto.Decrypt(ciphertext)
			if err != nil {
				obs.IncDecryptFailure()
				return nil, fmt.Errorf("reveal field %s: %w", name, err)
			}
			out[name] = plaintext
			obs.IncSensitiveReveal()
			continue
		}
		switch mode {
		case ModeMask:
			plaintext, err := crypto.Decrypt(ciphertext)
			if err != nil {
				obs.IncDecryptFailure()
				out[name] = maskedPlaceholder
				continue
			}
			out[name] = maskValue(kindOf(name), plaintext)
			obs.IncSensitiveMasked()
		case ModeOmit:
			// dropped
		}
	}
	return out, nil
}

// ProcessList applies ProcessRecord element-wise, preserving order.
func ProcessList(docs []map[string]any, ac access.Context, mode Mode) ([]map[string]any, error) {
	if docs == nil {
		return nil, nil
	}
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		processed, err := ProcessRecord(doc, ac, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, processed)
	}
	return out, nil
}

// ProcessCarrier renders a typed value through its compile-time field
// schema.
func ProcessCarrier(c Carrier, ac access.Context, mode Mode) (map[string]any, error) {
	if c == nil {
		return nil, nil
	}
	return ProcessRecord(c.Document(), ac, mode)
}

// canReveal decides full plaintext access for one record. Owning the
// record always reveals; otherwise the caller needs the sensitive-view
// flag and the record inside their scope.
func canReveal(ac access.Context, doc map[string]any) bool {
	owner := stringField(doc, keyEmployeeID)
	if owner == "" {
		owner = stringField(doc, keyRecordID)
	}
	if owner != "" && ac.OwnerIdentity != "" && owner == ac.OwnerIdentity {
		return true
	}
	if !ac.CanViewSensitive {
		return false
	}
	switch ac.Scope {
	case access.ScopeAll:
		return true
	case access.ScopeDepartment:
		dept := stringField(doc, keyDepartmentID)
		return dept != "" && dept == ac.DepartmentID
	default:
		return false
	}
}

func stringField(doc map[string]any, key string) string {
	v, ok := doc[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
