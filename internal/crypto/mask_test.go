package crypto

import "testing"

func TestMaskPhone(t *testing.T) {
	cases := map[string]string{
		"13800138000":     "138****8000",
		"+7701555443322":  "+77****3322",
		"8000":            "****",
		"":                "****",
		"123456789012345": "123****2345",
	}
	for input, expected := range cases {
		if got := MaskPhone(input); got != expected {
			t.Fatalf("MaskPhone(%q)=%q, want %q", input, got, expected)
		}
	}
}

func TestMaskIDNumber(t *testing.T) {
	cases := map[string]string{
		"110101199003078888": "1101****8888",
		"990307550123":       "9903****0123",
		"12345678":           "****",
		"":                   "****",
	}
	for input, expected := range cases {
		if got := MaskIDNumber(input); got != expected {
			t.Fatalf("MaskIDNumber(%q)=%q, want %q", input, got, expected)
		}
	}
}

func TestMaskBankAccount(t *testing.T) {
	cases := map[string]string{
		"KZ86125KZT5004100100": "****0100",
		"6222021234567890":     "****7890",
		"1234":                 "****",
		"":                     "****",
	}
	for input, expected := range cases {
		if got := MaskBankAccount(input); got != expected {
			t.Fatalf("MaskBankAccount(%q)=%q, want %q", input, got, expected)
		}
	}
}

func TestMaskName(t *testing.T) {
	cases := map[string]string{
		"张三丰":            "张**",
		"Алия Нурланова": "А**",
		"Li":             "L**",
		"  Wang  ":       "W**",
		"":               "****",
		"   ":            "****",
	}
	for input, expected := range cases {
		if got := MaskName(input); got != expected {
			t.Fatalf("MaskName(%q)=%q, want %q", input, got, expected)
		}
	}
}

// Masking operates on decrypted values only; it must be total and never
// grow with input length beyond the preserved head and tail.
func TestMaskShapesAreFixedWidth(t *testing.T) {
	long := "138001380001380013800"
	if got := MaskPhone(long); len([]rune(got)) != 3+4+4 {
		t.Fatalf("MaskPhone width drifted: %q", got)
	}
	if got := MaskIDNumber(long); len([]rune(got)) != 4+4+4 {
		t.Fatalf("MaskIDNumber width drifted: %q", got)
	}
	if got := MaskBankAccount(long); len([]rune(got)) != 4+4 {
		t.Fatalf("MaskBankAccount width drifted: %q", got)
	}
}
