package sensitive

import (
	"testing"
)

type testCarrier struct {
	doc map[string]any
}

func (c testCarrier) SensitiveFields() []Field {
	return []Field{{Name: "phone", Kind: KindPhone}}
}

func (c testCarrier) Document() map[string]any { return c.doc }

func TestInterceptWalksNestedPayloads(t *testing.T) {
	setTestKeys(t)

	payload := map[string]any{
		"total": 2,
		"items": []any{
			employeeDoc(t, "E1", "D2"),
			employeeDoc(t, "E2", "D2"),
		},
		"meta": map[string]any{
			"page":     1,
			"employee": employeeDoc(t, "E3", "D2"),
		},
	}

	out := NewInterceptor().Intercept(payload, managerContext("D1")).(map[string]any)

	if out["total"] != 2 {
		t.Fatalf("scalar passthrough broken: %v", out["total"])
	}
	items := out["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["phone"] != "138****8000" {
		t.Fatalf("nested record not masked: %v", first["phone"])
	}
	assertNoInternalKeys(t, first)
	meta := out["meta"].(map[string]any)
	nested := meta["employee"].(map[string]any)
	if nested["phone"] != "138****8000" {
		t.Fatalf("deeply nested record not masked: %v", nested["phone"])
	}
	assertNoInternalKeys(t, nested)
}

func TestInterceptHandlesCarrier(t *testing.T) {
	setTestKeys(t)

	c := testCarrier{doc: employeeDoc(t, "E1", "D2")}
	out := NewInterceptor().Intercept(c, managerContext("D1")).(map[string]any)
	if out["phone"] != "138****8000" {
		t.Fatalf("carrier not routed through processor: %v", out["phone"])
	}
	assertNoInternalKeys(t, out)
}

func TestInterceptScalarsPassThrough(t *testing.T) {
	setTestKeys(t)

	i := NewInterceptor()
	ac := managerContext("D1")
	if got := i.Intercept("hello", ac); got != "hello" {
		t.Fatalf("string changed: %v", got)
	}
	if got := i.Intercept(42, ac); got != 42 {
		t.Fatalf("int changed: %v", got)
	}
	if got := i.Intercept(nil, ac); got != nil {
		t.Fatalf("nil changed: %v", got)
	}
}

func TestInterceptExcludedPaths(t *testing.T) {
	i := NewInterceptor("/v1/auth/token", "/healthz")
	if !i.Excluded("/v1/auth/token") || !i.Excluded("/healthz") {
		t.Fatalf("expected excluded paths to bypass interception")
	}
	if i.Excluded("/v1/employees") {
		t.Fatalf("unexpected exclusion")
	}
}

// A record that fails mandatory-reveal decryption is omitted from the
// response rather than passed through unprocessed.
func TestInterceptFailsClosedOnProcessingError(t *testing.T) {
	setTestKeys(t)

	broken := employeeDoc(t, "E1", "D1")
	broken["phone_encrypted"] = "!!corrupt!!"
	healthy := employeeDoc(t, "E2", "D1")

	payload := map[string]any{
		"broken":  broken,
		"healthy": healthy,
	}

	// Manager in D1 with the sensitive flag: reveal path, so the corrupt
	// ciphertext is a hard decrypt failure.
	out := NewInterceptor().Intercept(payload, managerContext("D1")).(map[string]any)

	if _, present := out["broken"]; present {
		t.Fatalf("failed sub-object must be omitted, got %v", out["broken"])
	}
	if _, present := out["healthy"]; !present {
		t.Fatalf("healthy sub-object must survive")
	}
}

func TestInterceptFailsClosedInsideLists(t *testing.T) {
	setTestKeys(t)

	broken := employeeDoc(t, "E1", "D1")
	broken["phone_encrypted"] = "!!corrupt!!"

	payload := []map[string]any{broken, employeeDoc(t, "E2", "D1")}
	out := NewInterceptor().Intercept(payload, managerContext("D1")).([]any)
	if len(out) != 1 {
		t.Fatalf("expected the broken element dropped, got %d elements", len(out))
	}
	if out[0].(map[string]any)["id"] != "E2" {
		t.Fatalf("wrong element survived: %v", out[0])
	}
}
