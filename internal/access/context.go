package access

import (
	"errors"
	"strings"
)

// ErrPermissionDenied indicates the caller lacked a required permission.
// It is surfaced as an explicit denial, never conflated with not-found.
var ErrPermissionDenied = errors.New("access: permission denied")

// UserAttributes are the stored per-user security attributes resolved by
// the authentication collaborator.
type UserAttributes struct {
	Role             string
	DataScope        string
	DepartmentID     string
	EmployeeID       string
	CanViewSensitive bool
}

// Context is the resolved security identity for one authenticated
// request. It is built once after authentication, never mutated, never
// shared across requests.
type Context struct {
	Role             Role
	Scope            DataScope
	DepartmentID     string
	OwnerIdentity    string
	CanViewSensitive bool
	Permissions      Set
}

// BuildContext resolves stored user attributes into an immutable access
// context. A missing or unknown role yields the most restrictive state:
// self scope, no sensitive access, empty permission set.
func BuildContext(attrs UserAttributes) Context {
	deptID := strings.TrimSpace(attrs.DepartmentID)
	ownerID := strings.TrimSpace(attrs.EmployeeID)

	role, ok := ParseRole(attrs.Role)
	if !ok {
		return Context{
			Scope:         ScopeSelf,
			DepartmentID:  deptID,
			OwnerIdentity: ownerID,
			Permissions:   Set{},
		}
	}

	scope, ok := ParseDataScope(attrs.DataScope)
	if !ok {
		scope = ScopeSelf
	}

	return Context{
		Role:             role,
		Scope:            scope,
		DepartmentID:     deptID,
		OwnerIdentity:    ownerID,
		CanViewSensitive: attrs.CanViewSensitive,
		Permissions:      PermissionsFor(role),
	}
}

// Require returns ErrPermissionDenied unless the context holds the
// required permission.
func (c Context) Require(p Permission) error {
	if !c.Permissions.Matches(p) {
		return ErrPermissionDenied
	}
	return nil
}

// RequireAny returns nil if the context holds at least one of the given
// permissions.
func (c Context) RequireAny(perms ...Permission) error {
	for _, p := range perms {
		if c.Permissions.Matches(p) {
			return nil
		}
	}
	return ErrPermissionDenied
}
