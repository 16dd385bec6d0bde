package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"kadrio.org/internal/access"
	"kadrio.org/internal/employee"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func employeeColumnsList() []string {
	return []string{
		"id", "department_id", "position", "email", "status",
		"name_encrypted", "name_digest", "phone_encrypted", "phone_digest",
		"id_number_encrypted", "id_number_digest", "bank_account_encrypted",
		"created_at", "updated_at",
	}
}

func employeeRow(rows *sqlmock.Rows, id, dept string) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(
		id, dept, "engineer", "a@kadrio.org", "active",
		"ct-name", "dg-name", "ct-phone", "dg-phone",
		"ct-idnum", "dg-idnum", "ct-bank",
		now, now,
	)
}

func TestEmployeesCreate(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectExec("insert into employees").
		WithArgs(
			"E1", "D1", "engineer", "a@kadrio.org", "active",
			"ct-name", "dg-name", "ct-phone", "dg-phone",
			"ct-idnum", "dg-idnum", "ct-bank",
			now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Employees().Create(context.Background(), employee.Employee{
		ID: "E1", DepartmentID: "D1", Position: "engineer",
		Email: "a@kadrio.org", Status: "active",
		NameEncrypted: "ct-name", NameDigest: "dg-name",
		PhoneEncrypted: "ct-phone", PhoneDigest: "dg-phone",
		IDNumberEncrypted: "ct-idnum", IDNumberDigest: "dg-idnum",
		BankAccountEncrypted: "ct-bank",
		CreatedAt:            now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeesCreateDuplicateMapsToConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into employees").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := store.Employees().Create(context.Background(), employee.Employee{ID: "E1"})
	if !errors.Is(err, employee.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestEmployeesGetNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("from employees where id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(employeeColumnsList()))

	_, err := store.Employees().Get(context.Background(), "missing")
	if !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeesGet(t *testing.T) {
	store, mock := newMockStore(t)

	rows := employeeRow(sqlmock.NewRows(employeeColumnsList()), "E1", "D1")
	mock.ExpectQuery("from employees where id").
		WithArgs("E1").
		WillReturnRows(rows)

	e, err := store.Employees().Get(context.Background(), "E1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if e.ID != "E1" || e.PhoneEncrypted != "ct-phone" || e.PhoneDigest != "dg-phone" {
		t.Fatalf("unexpected employee: %+v", e)
	}
}

func TestEmployeesListScopeAll(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(employeeColumnsList())
	employeeRow(rows, "E1", "D1")
	employeeRow(rows, "E2", "D2")
	mock.ExpectQuery("from employees order by").
		WillReturnRows(rows)

	out, err := store.Employees().List(context.Background(), access.ScopeFilter{Kind: access.FilterNone})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
}

func TestEmployeesListScopeDepartmentBindsPredicate(t *testing.T) {
	store, mock := newMockStore(t)

	rows := employeeRow(sqlmock.NewRows(employeeColumnsList()), "E1", "D1")
	mock.ExpectQuery("from employees where department_id").
		WithArgs("D1").
		WillReturnRows(rows)

	out, err := store.Employees().List(context.Background(), access.ScopeFilter{
		Kind:         access.FilterDepartment,
		DepartmentID: "D1",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out) != 1 || out[0].DepartmentID != "D1" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeesListScopeSelfBindsOwner(t *testing.T) {
	store, mock := newMockStore(t)

	rows := employeeRow(sqlmock.NewRows(employeeColumnsList()), "E7", "D1")
	mock.ExpectQuery("from employees where id").
		WithArgs("E7").
		WillReturnRows(rows)

	out, err := store.Employees().List(context.Background(), access.ScopeFilter{
		Kind:          access.FilterSelf,
		OwnerIdentity: "E7",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "E7" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestEmployeesSearchByPhoneDigestScoped(t *testing.T) {
	store, mock := newMockStore(t)

	rows := employeeRow(sqlmock.NewRows(employeeColumnsList()), "E1", "D1")
	mock.ExpectQuery("from employees where phone_digest = .+ and department_id").
		WithArgs("dg-phone", "D1").
		WillReturnRows(rows)

	out, err := store.Employees().SearchByPhoneDigest(context.Background(), "dg-phone", access.ScopeFilter{
		Kind:         access.FilterDepartment,
		DepartmentID: "D1",
	})
	if err != nil {
		t.Fatalf("SearchByPhoneDigest failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "E1" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeesUpdateNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("update employees set").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Employees().Update(context.Background(), employee.Employee{ID: "missing"})
	if !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeesDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from employees where id").
		WithArgs("E1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("delete from employees where id").
		WithArgs("E1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Employees().Delete(context.Background(), "E1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Employees().Delete(context.Background(), "E1"); !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
