package access

import "strings"

// Permission is a dot-delimited resource.action capability key. The
// closed set of constants below is the whole catalog; handlers refer to
// these constants so typos surface at build time.
type Permission string

const (
	// PermAll grants everything.
	PermAll Permission = "*"

	PermEmployeesAll            Permission = "employees.*"
	PermEmployeesViewAll        Permission = "employees.view_all"
	PermEmployeesViewDepartment Permission = "employees.view_department"
	PermEmployeesViewSelf       Permission = "employees.view_self"
	PermEmployeesCreate         Permission = "employees.create"
	PermEmployeesUpdate         Permission = "employees.update"
	PermEmployeesDelete         Permission = "employees.delete"
	PermEmployeesSearch         Permission = "employees.search"

	PermDepartmentsAll    Permission = "departments.*"
	PermDepartmentsView   Permission = "departments.view"
	PermDepartmentsManage Permission = "departments.manage"

	PermReportsAll    Permission = "reports.*"
	PermReportsView   Permission = "reports.view"
	PermReportsExport Permission = "reports.export"
)

// Set is an immutable-by-convention collection of held permissions.
type Set map[Permission]struct{}

// NewSet builds a Set from the given permissions.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		if strings.TrimSpace(string(p)) == "" {
			continue
		}
		s[p] = struct{}{}
	}
	return s
}

// Matches reports whether the held set satisfies the required
// permission: the set contains "*", contains required verbatim, or
// contains a resource wildcard "resource.*" whose resource prefixes
// required. Wildcards never apply to the action segment, and an empty
// required permission matches nothing.
func (s Set) Matches(required Permission) bool {
	if strings.TrimSpace(string(required)) == "" {
		return false
	}
	if _, ok := s[PermAll]; ok {
		return true
	}
	if _, ok := s[required]; ok {
		return true
	}
	for held := range s {
		h := string(held)
		if !strings.HasSuffix(h, ".*") {
			continue
		}
		// "employees.*" matches anything starting with "employees.".
		if strings.HasPrefix(string(required), h[:len(h)-1]) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

var rolePermissions = map[Role]Set{
	RoleAdmin: NewSet(PermAll),
	RoleHRAdmin: NewSet(
		PermEmployeesAll,
		PermDepartmentsAll,
		PermReportsAll,
	),
	RoleDepartmentManager: NewSet(
		PermEmployeesViewDepartment,
		PermEmployeesUpdate,
		PermEmployeesSearch,
		PermDepartmentsView,
		PermReportsView,
	),
	RoleEmployee: NewSet(
		PermEmployeesViewSelf,
		PermDepartmentsView,
	),
}

// PermissionsFor returns the static permission set for a role. Unknown
// roles get the empty set: the catalog fails closed.
func PermissionsFor(role Role) Set {
	perms, ok := rolePermissions[role]
	if !ok {
		return Set{}
	}
	return perms.Clone()
}
