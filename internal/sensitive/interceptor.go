package sensitive

import (
	"strings"

	"kadrio.org/internal/access"
	"kadrio.org/internal/obs"
)

// Interceptor guards the outbound serialization boundary. It walks an
// arbitrary nested payload, routes every record carrying encrypted-field
// markers through the processor in mask mode, and passes everything else
// through untouched. Controllers that forget explicit processing are
// still covered.
type Interceptor struct {
	excludedPaths []string
}

// NewInterceptor builds an interceptor; payloads for the given exact
// request paths bypass processing entirely (e.g. authentication
// endpoints that never carry employee data).
func NewInterceptor(excludedPaths ...string) *Interceptor {
	cleaned := make([]string, 0, len(excludedPaths))
	for _, p := range excludedPaths {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &Interceptor{excludedPaths: cleaned}
}

// Excluded reports whether the request path bypasses interception.
func (i *Interceptor) Excluded(path string) bool {
	for _, p := range i.excludedPaths {
		if path == p {
			return true
		}
	}
	return false
}

// Intercept processes payload for the given caller. A processing failure
// anywhere never aborts the response and never lets the unprocessed
// sub-object through: the affected sub-object is omitted (fail closed).
func (i *Interceptor) Intercept(payload any, ac access.Context) any {
	out, ok := walk(payload, ac)
	if !ok {
		return nil
	}
	return out
}

func walk(v any, ac access.Context) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case Carrier:
		doc, err := ProcessCarrier(t, ac, ModeMask)
		if err != nil {
			obs.IncAccessDenial("interceptor")
			return nil, false
		}
		return doc, true
	case map[string]any:
		if hasEncryptedMarker(t) {
			doc, err := ProcessRecord(t, ac, ModeMask)
			if err != nil {
				obs.IncAccessDenial("interceptor")
				return nil, false
			}
			return doc, true
		}
		out := make(map[string]any, len(t))
		for key, value := range t {
			processed, ok := walk(value, ac)
			if !ok {
				continue
			}
			out[key] = processed
		}
		return out, true
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, elem := range t {
			processed, ok := walk(elem, ac)
			if !ok {
				continue
			}
			out = append(out, processed)
		}
		return out, true
	case []any:
		out := make([]any, 0, len(t))
		for _, elem := range t {
			processed, ok := walk(elem, ac)
			if !ok {
				continue
			}
			out = append(out, processed)
		}
		return out, true
	default:
		return v, true
	}
}

func hasEncryptedMarker(doc map[string]any) bool {
	for key := range doc {
		if strings.HasSuffix(key, suffixEncrypted) {
			return true
		}
	}
	return false
}
