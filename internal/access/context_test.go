package access

import (
	"errors"
	"testing"
)

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(UserAttributes{
		Role:             "department_manager",
		DataScope:        "department",
		DepartmentID:     "D1",
		EmployeeID:       "E1",
		CanViewSensitive: true,
	})
	if ctx.Role != RoleDepartmentManager || ctx.Scope != ScopeDepartment {
		t.Fatalf("unexpected role/scope: %v/%v", ctx.Role, ctx.Scope)
	}
	if ctx.DepartmentID != "D1" || ctx.OwnerIdentity != "E1" {
		t.Fatalf("identity attributes not carried over")
	}
	if !ctx.CanViewSensitive {
		t.Fatalf("sensitivity flag lost")
	}
	if !ctx.Permissions.Matches(PermEmployeesViewDepartment) {
		t.Fatalf("permissions not resolved from catalog")
	}
}

func TestBuildContextMissingRoleFailsClosed(t *testing.T) {
	ctx := BuildContext(UserAttributes{
		Role:             "",
		DataScope:        "all",
		CanViewSensitive: true,
	})
	if ctx.Scope != ScopeSelf {
		t.Fatalf("missing role must default to self scope, got %v", ctx.Scope)
	}
	if len(ctx.Permissions) != 0 {
		t.Fatalf("missing role must yield empty permissions")
	}
	if ctx.CanViewSensitive {
		t.Fatalf("missing role must not keep sensitive access")
	}
}

func TestBuildContextUnknownScopeDefaultsToSelf(t *testing.T) {
	ctx := BuildContext(UserAttributes{Role: "employee", DataScope: "galaxy"})
	if ctx.Scope != ScopeSelf {
		t.Fatalf("unknown scope must collapse to self, got %v", ctx.Scope)
	}
}

func TestRequire(t *testing.T) {
	ctx := BuildContext(UserAttributes{Role: "employee", DataScope: "self", EmployeeID: "E1"})
	if err := ctx.Require(PermEmployeesViewSelf); err != nil {
		t.Fatalf("expected grant, got %v", err)
	}
	if err := ctx.Require(PermEmployeesDelete); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := ctx.RequireAny(PermEmployeesViewAll, PermEmployeesViewSelf); err != nil {
		t.Fatalf("RequireAny should accept any held permission: %v", err)
	}
	if err := ctx.RequireAny(PermEmployeesViewAll, PermEmployeesViewDepartment); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
