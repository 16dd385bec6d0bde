package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kadrio.org/internal/access"
	"kadrio.org/internal/audit"
	"kadrio.org/internal/crypto"
	"kadrio.org/internal/ids"
	"kadrio.org/internal/obs"
	"kadrio.org/internal/sensitive"
)

const (
	statusActive   = "active"
	statusInactive = "inactive"
)

const resourceEmployees = "employees"

// Service enforces permissions and scope on every employee operation.
// Sensitive attributes are encrypted before they reach the store and
// processed before any record leaves the service.
type Service struct {
	store Store
}

// NewService constructs a Service over the given store.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidInput)
	}
	return &Service{store: store}, nil
}

// Create encrypts the sensitive attributes of a new employee and
// persists ciphertext plus paired search digests. The caller gets back
// the processed record, never raw ciphertext.
func (s *Service) Create(ctx context.Context, ac access.Context, in NewEmployee) (map[string]any, error) {
	if err := ac.Require(access.PermEmployeesCreate); err != nil {
		obs.IncAccessDenial("permission")
		return nil, err
	}

	in.DepartmentID = strings.TrimSpace(in.DepartmentID)
	if in.DepartmentID == "" {
		return nil, fmt.Errorf("%w: department_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	status := strings.TrimSpace(strings.ToLower(in.Status))
	if status == "" {
		status = statusActive
	}
	if status != statusActive && status != statusInactive {
		return nil, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
	}

	now := time.Now().UTC()
	e := Employee{
		ID:           ids.New(),
		DepartmentID: in.DepartmentID,
		Position:     strings.TrimSpace(in.Position),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var err error
	if e.NameEncrypted, e.NameDigest, err = sealWithDigest(in.Name); err != nil {
		return nil, err
	}
	if e.PhoneEncrypted, e.PhoneDigest, err = sealWithDigest(in.Phone); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.IDNumber) != "" {
		if e.IDNumberEncrypted, e.IDNumberDigest, err = sealWithDigest(in.IDNumber); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(in.BankAccount) != "" {
		if e.BankAccountEncrypted, err = crypto.Encrypt(in.BankAccount); err != nil {
			return nil, err
		}
	}

	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	_ = audit.LogEvent(ctx, "employee.created", map[string]any{
		"employee_id":   e.ID,
		"department_id": e.DepartmentID,
	})
	return sensitive.ProcessCarrier(e, ac, sensitive.ModeMask)
}

// Get returns one processed record. A record outside the caller's scope
// is an explicit denial, not a not-found.
func (s *Service) Get(ctx context.Context, ac access.Context, id string) (map[string]any, error) {
	if err := s.requireView(ac); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}

	filter, err := access.ResolveScopeFilter(ac, resourceEmployees)
	if err != nil {
		return nil, err
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !filter.Allows(e.DepartmentID, e.ID) {
		obs.IncAccessDenial("scope")
		_ = audit.LogEvent(ctx, "employee.scope_denied", map[string]any{
			"employee_id": e.ID,
		})
		return nil, access.ErrPermissionDenied
	}
	return sensitive.ProcessCarrier(e, ac, sensitive.ModeMask)
}

// List returns processed records inside the caller's scope, in store
// order.
func (s *Service) List(ctx context.Context, ac access.Context) ([]map[string]any, error) {
	if err := s.requireView(ac); err != nil {
		return nil, err
	}
	filter, err := access.ResolveScopeFilter(ac, resourceEmployees)
	if err != nil {
		return nil, err
	}
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.processList(records, ac)
}

// SearchByPhone finds employees by exact phone match using the search
// digest, without decrypting any stored row.
func (s *Service) SearchByPhone(ctx context.Context, ac access.Context, phone string) ([]map[string]any, error) {
	if err := ac.Require(access.PermEmployeesSearch); err != nil {
		obs.IncAccessDenial("permission")
		return nil, err
	}
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	digest, err := crypto.SearchDigest(phone)
	if err != nil {
		return nil, err
	}
	filter, err := access.ResolveScopeFilter(ac, resourceEmployees)
	if err != nil {
		return nil, err
	}
	records, err := s.store.SearchByPhoneDigest(ctx, digest, filter)
	if err != nil {
		return nil, err
	}
	return s.processList(records, ac)
}

// Update applies partial changes; changed sensitive attributes are
// re-encrypted with a fresh nonce and their digest refreshed.
func (s *Service) Update(ctx context.Context, ac access.Context, id string, upd Update) (map[string]any, error) {
	if err := ac.Require(access.PermEmployeesUpdate); err != nil {
		obs.IncAccessDenial("permission")
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}
	filter, err := access.ResolveScopeFilter(ac, resourceEmployees)
	if err != nil {
		return nil, err
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !filter.Allows(e.DepartmentID, e.ID) {
		obs.IncAccessDenial("scope")
		return nil, access.ErrPermissionDenied
	}

	if upd.DepartmentID != nil {
		dept := strings.TrimSpace(*upd.DepartmentID)
		if dept == "" {
			return nil, fmt.Errorf("%w: department_id is required", ErrInvalidInput)
		}
		e.DepartmentID = dept
	}
	if upd.Position != nil {
		e.Position = strings.TrimSpace(*upd.Position)
	}
	if upd.Email != nil {
		e.Email = strings.TrimSpace(strings.ToLower(*upd.Email))
	}
	if upd.Status != nil {
		status := strings.TrimSpace(strings.ToLower(*upd.Status))
		if status != statusActive && status != statusInactive {
			return nil, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
		}
		e.Status = status
	}
	if upd.Name != nil {
		if e.NameEncrypted, e.NameDigest, err = sealWithDigest(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Phone != nil {
		if e.PhoneEncrypted, e.PhoneDigest, err = sealWithDigest(*upd.Phone); err != nil {
			return nil, err
		}
	}
	if upd.IDNumber != nil {
		if e.IDNumberEncrypted, e.IDNumberDigest, err = sealWithDigest(*upd.IDNumber); err != nil {
			return nil, err
		}
	}
	if upd.BankAccount != nil {
		if e.BankAccountEncrypted, err = crypto.Encrypt(*upd.BankAccount); err != nil {
			return nil, err
		}
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	_ = audit.LogEvent(ctx, "employee.updated", map[string]any{
		"employee_id": e.ID,
	})
	return sensitive.ProcessCarrier(e, ac, sensitive.ModeMask)
}

// Delete removes a record inside the caller's scope.
func (s *Service) Delete(ctx context.Context, ac access.Context, id string) error {
	if err := ac.Require(access.PermEmployeesDelete); err != nil {
		obs.IncAccessDenial("permission")
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}
	filter, err := access.ResolveScopeFilter(ac, resourceEmployees)
	if err != nil {
		return err
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !filter.Allows(e.DepartmentID, e.ID) {
		obs.IncAccessDenial("scope")
		return access.ErrPermissionDenied
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_ = audit.LogEvent(ctx, "employee.deleted", map[string]any{
		"employee_id": id,
	})
	return nil
}

func (s *Service) requireView(ac access.Context) error {
	err := ac.RequireAny(
		access.PermEmployeesViewAll,
		access.PermEmployeesViewDepartment,
		access.PermEmployeesViewSelf,
	)
	if err != nil {
		obs.IncAccessDenial("permission")
	}
	return err
}

func (s *Service) processList(records []Employee, ac access.Context) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(records))
	for _, e := range records {
		docs = append(docs, e.Document())
	}
	return sensitive.ProcessList(docs, ac, sensitive.ModeMask)
}

func sealWithDigest(plaintext string) (string, string, error) {
	sealed, err := crypto.Encrypt(plaintext)
	if err != nil {
		return "", "", err
	}
	digest, err := crypto.SearchDigest(plaintext)
	if err != nil {
		return "", "", err
	}
	return sealed, digest, nil
}
