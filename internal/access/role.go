// Package access implements the role and data-scope permission model:
// the static role-to-permission catalog, the per-request access context
// built from stored user attributes, and the scope filter resolution
// applied by the data layer.
package access

import "strings"

// Role is a closed enumeration of the platform roles. Roles carry no
// behavior of their own; their capabilities come from the permission
// catalog.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleHRAdmin           Role = "hr_admin"
	RoleDepartmentManager Role = "department_manager"
	RoleEmployee          Role = "employee"
)

// ParseRole maps a stored role string onto the enumeration. Unknown
// values report ok=false and must be treated as no role at all.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleHRAdmin:
		return RoleHRAdmin, true
	case RoleDepartmentManager:
		return RoleDepartmentManager, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}

// DataScope is the breadth of records a caller may see.
type DataScope string

const (
	ScopeAll        DataScope = "all"
	ScopeDepartment DataScope = "department"
	ScopeSelf       DataScope = "self"
)

// ParseDataScope maps a stored scope string onto the enumeration.
func ParseDataScope(s string) (DataScope, bool) {
	switch DataScope(strings.TrimSpace(strings.ToLower(s))) {
	case ScopeAll:
		return ScopeAll, true
	case ScopeDepartment:
		return ScopeDepartment, true
	case ScopeSelf:
		return ScopeSelf, true
	default:
		return "", false
	}
}
