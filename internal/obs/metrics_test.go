package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                              "/",
		"/metrics":                      "/metrics",
		"/v1/employees":                 "/v1/employees",
		"/v1/employees/01HZX3":          "/v1/employees/:id",
		"/v1/employees/search":          "/v1/employees/search",
		"/v1/employees/search?phone=13": "/v1/employees/search",
		"/v1/employees/abc/extra":       "/v1/employees/abc/extra",
		"/v1/auth/token":                "/v1/auth/token",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
