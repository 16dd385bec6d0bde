package access

import (
	"errors"
	"testing"
)

func TestResolveScopeFilterTotality(t *testing.T) {
	cases := []struct {
		name string
		ctx  Context
		want FilterKind
	}{
		{"all", Context{Scope: ScopeAll}, FilterNone},
		{"department", Context{Scope: ScopeDepartment, DepartmentID: "D1"}, FilterDepartment},
		{"self", Context{Scope: ScopeSelf, OwnerIdentity: "E1"}, FilterSelf},
	}
	for _, tc := range cases {
		for _, resource := range []string{"employees", "departments", "reports"} {
			f, err := ResolveScopeFilter(tc.ctx, resource)
			if err != nil {
				t.Fatalf("%s/%s: %v", tc.name, resource, err)
			}
			if f.Kind != tc.want {
				t.Fatalf("%s/%s: kind=%v, want %v", tc.name, resource, f.Kind, tc.want)
			}
		}
	}
}

func TestResolveScopeFilterCarriesIdentity(t *testing.T) {
	f, err := ResolveScopeFilter(Context{Scope: ScopeDepartment, DepartmentID: "D7"}, "employees")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.DepartmentID != "D7" {
		t.Fatalf("department id not carried: %q", f.DepartmentID)
	}
	f, err = ResolveScopeFilter(Context{Scope: ScopeSelf, OwnerIdentity: "E9"}, "employees")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if f.OwnerIdentity != "E9" {
		t.Fatalf("owner identity not carried: %q", f.OwnerIdentity)
	}
}

func TestResolveScopeFilterFailsLoud(t *testing.T) {
	if _, err := ResolveScopeFilter(Context{Scope: ScopeDepartment}, "employees"); !errors.Is(err, ErrScopeConfig) {
		t.Fatalf("department scope without department must fail, got %v", err)
	}
	if _, err := ResolveScopeFilter(Context{Scope: ScopeSelf}, "employees"); !errors.Is(err, ErrScopeConfig) {
		t.Fatalf("self scope without identity must fail, got %v", err)
	}
	if _, err := ResolveScopeFilter(Context{Scope: DataScope("team")}, "employees"); !errors.Is(err, ErrScopeConfig) {
		t.Fatalf("unknown scope must fail closed, got %v", err)
	}
}

func TestScopeFilterAllows(t *testing.T) {
	none := ScopeFilter{Kind: FilterNone}
	if !none.Allows("D1", "E1") || !none.Allows("", "") {
		t.Fatalf("no filter must allow everything")
	}
	dept := ScopeFilter{Kind: FilterDepartment, DepartmentID: "D1"}
	if !dept.Allows("D1", "E2") {
		t.Fatalf("same department must pass")
	}
	if dept.Allows("D2", "E2") || dept.Allows("", "E2") {
		t.Fatalf("other department must not pass")
	}
	self := ScopeFilter{Kind: FilterSelf, OwnerIdentity: "E1"}
	if !self.Allows("D2", "E1") {
		t.Fatalf("owner must pass regardless of department")
	}
	if self.Allows("D1", "E2") || self.Allows("D1", "") {
		t.Fatalf("non-owner must not pass")
	}
}
