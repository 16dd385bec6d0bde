package access

import (
	"errors"
	"fmt"
)

// ErrScopeConfig indicates the stored user attributes cannot support the
// declared data scope (department scope without a department, self scope
// without a linked employee). Resolution fails loudly instead of falling
// back to unscoped access.
var ErrScopeConfig = errors.New("access: scope configuration invalid")

// FilterKind discriminates the scope filter variants.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterDepartment
	FilterSelf
)

// ScopeFilter is the declarative predicate the data layer must apply
// before returning rows. It is a pure value; applying it is the store's
// responsibility.
type ScopeFilter struct {
	Kind          FilterKind
	DepartmentID  string
	OwnerIdentity string
}

// Allows reports whether a record with the given department and owner
// identity falls inside the filter. Stores that cannot push the
// predicate into a query use it for post-filtering.
func (f ScopeFilter) Allows(departmentID, ownerIdentity string) bool {
	switch f.Kind {
	case FilterNone:
		return true
	case FilterDepartment:
		return departmentID != "" && departmentID == f.DepartmentID
	case FilterSelf:
		return ownerIdentity != "" && ownerIdentity == f.OwnerIdentity
	default:
		return false
	}
}

// ResolveScopeFilter maps a context's data scope onto exactly one filter
// variant for the target resource kind. There is no scope that yields
// "no rows"; missing required attributes are a configuration error.
func ResolveScopeFilter(c Context, resource string) (ScopeFilter, error) {
	switch c.Scope {
	case ScopeAll:
		return ScopeFilter{Kind: FilterNone}, nil
	case ScopeDepartment:
		if c.DepartmentID == "" {
			return ScopeFilter{}, fmt.Errorf("%w: department scope without department_id (resource %s)", ErrScopeConfig, resource)
		}
		return ScopeFilter{Kind: FilterDepartment, DepartmentID: c.DepartmentID}, nil
	case ScopeSelf:
		if c.OwnerIdentity == "" {
			return ScopeFilter{}, fmt.Errorf("%w: self scope without owner identity (resource %s)", ErrScopeConfig, resource)
		}
		return ScopeFilter{Kind: FilterSelf, OwnerIdentity: c.OwnerIdentity}, nil
	default:
		return ScopeFilter{}, fmt.Errorf("%w: unknown data scope %q (resource %s)", ErrScopeConfig, c.Scope, resource)
	}
}
