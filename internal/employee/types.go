// Package employee holds the employee aggregate and the service that
// encrypts sensitive attributes on write, resolves scope filters before
// queries, and runs every outbound record through the sensitive-field
// processor.
package employee

import (
	"context"
	"errors"
	"time"

	"kadrio.org/internal/access"
	"kadrio.org/internal/sensitive"
)

var (
	ErrNotFound     = errors.New("employee: not found")
	ErrConflict     = errors.New("employee: already exists")
	ErrInvalidInput = errors.New("employee: invalid input")
)

// Employee is the stored form of an employee record. Sensitive
// attributes exist only as ciphertext plus, for searchable fields, a
// deterministic digest; plaintext never reaches a store.
type Employee struct {
	ID           string
	DepartmentID string
	Position     string
	Email        string
	Status       string

	NameEncrypted        string
	NameDigest           string
	PhoneEncrypted       string
	PhoneDigest          string
	IDNumberEncrypted    string
	IDNumberDigest       string
	BankAccountEncrypted string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SensitiveFields fixes the protected attribute set at compile time.
func (e Employee) SensitiveFields() []sensitive.Field {
	return []sensitive.Field{
		{Name: "name", Kind: sensitive.KindName},
		{Name: "phone", Kind: sensitive.KindPhone},
		{Name: "id_number", Kind: sensitive.KindIDNumber},
		{Name: "bank_account", Kind: sensitive.KindBankAccount},
	}
}

// Document renders the record for the sensitive-field processor. The
// *_encrypted and *_hash keys are internal and stripped before the
// record leaves the system.
func (e Employee) Document() map[string]any {
	doc := map[string]any{
		"id":            e.ID,
		"department_id": e.DepartmentID,
		"position":      e.Position,
		"email":         e.Email,
		"status":        e.Status,
		"created_at":    e.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":    e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.NameEncrypted != "" {
		doc["name_encrypted"] = e.NameEncrypted
		doc["name_hash"] = e.NameDigest
	}
	if e.PhoneEncrypted != "" {
		doc["phone_encrypted"] = e.PhoneEncrypted
		doc["phone_hash"] = e.PhoneDigest
	}
	if e.IDNumberEncrypted != "" {
		doc["id_number_encrypted"] = e.IDNumberEncrypted
		doc["id_number_hash"] = e.IDNumberDigest
	}
	if e.BankAccountEncrypted != "" {
		doc["bank_account_encrypted"] = e.BankAccountEncrypted
	}
	return doc
}

var _ sensitive.Carrier = Employee{}

// NewEmployee carries the plaintext attributes of a record being
// created. The service encrypts them before persistence; they are never
// stored as-is.
type NewEmployee struct {
	DepartmentID string
	Position     string
	Email        string
	Status       string

	Name        string
	Phone       string
	IDNumber    string
	BankAccount string
}

// Update carries optional changes; nil means "leave unchanged". Changing
// a sensitive attribute re-encrypts it and refreshes its digest.
type Update struct {
	DepartmentID *string
	Position     *string
	Email        *string
	Status       *string

	Name        *string
	Phone       *string
	IDNumber    *string
	BankAccount *string
}

// Store describes employee persistence. List and SearchByPhoneDigest
// receive the resolved scope filter as an opaque predicate descriptor
// and must apply it before returning rows.
type Store interface {
	Create(ctx context.Context, e Employee) error
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter access.ScopeFilter) ([]Employee, error)
	SearchByPhoneDigest(ctx context.Context, digest string, filter access.ScopeFilter) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
}
