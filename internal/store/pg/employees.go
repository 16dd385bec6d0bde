package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kadrio.org/internal/access"
	"kadrio.org/internal/employee"
)

var _ employee.Store = (*Employees)(nil)

// Employees implements employee.Store on PostgreSQL.
type Employees struct {
	db *sql.DB
}

const employeeColumns = `id, department_id, position, email, status,
	name_encrypted, name_digest, phone_encrypted, phone_digest,
	id_number_encrypted, id_number_digest, bank_account_encrypted,
	created_at, updated_at`

func (s *Employees) Create(ctx context.Context, e employee.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		insert into employees (
			id, department_id, position, email, status,
			name_encrypted, name_digest, phone_encrypted, phone_digest,
			id_number_encrypted, id_number_digest, bank_account_encrypted,
			created_at, updated_at
		) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		e.ID, e.DepartmentID, e.Position, e.Email, e.Status,
		e.NameEncrypted, e.NameDigest, e.PhoneEncrypted, e.PhoneDigest,
		e.IDNumberEncrypted, e.IDNumberDigest, e.BankAccountEncrypted,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return employee.ErrConflict
		}
		return fmt.Errorf("pg: insert employee: %w", err)
	}
	return nil
}

func (s *Employees) Get(ctx context.Context, id string) (employee.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+employeeColumns+` from employees where id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("pg: get employee: %w", err)
	}
	return e, nil
}

func (s *Employees) List(ctx context.Context, filter access.ScopeFilter) ([]employee.Employee, error) {
	query := `select ` + employeeColumns + ` from employees`
	where, args := scopePredicate(filter, nil)
	if where != "" {
		query += ` where ` + where
	}
	query += ` order by created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list employees: %w", err)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Employees) SearchByPhoneDigest(ctx context.Context, digest string, filter access.ScopeFilter) ([]employee.Employee, error) {
	query := `select ` + employeeColumns + ` from employees where phone_digest = $1`
	where, args := scopePredicate(filter, []any{digest})
	if where != "" {
		query += ` and ` + where
	}
	query += ` order by created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: search employees: %w", err)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Employees) Update(ctx context.Context, e employee.Employee) error {
	res, err := s.db.ExecContext(ctx, `
		update employees set
			department_id = $2, position = $3, email = $4, status = $5,
			name_encrypted = $6, name_digest = $7,
			phone_encrypted = $8, phone_digest = $9,
			id_number_encrypted = $10, id_number_digest = $11,
			bank_account_encrypted = $12, updated_at = $13
		where id = $1
	`,
		e.ID, e.DepartmentID, e.Position, e.Email, e.Status,
		e.NameEncrypted, e.NameDigest, e.PhoneEncrypted, e.PhoneDigest,
		e.IDNumberEncrypted, e.IDNumberDigest, e.BankAccountEncrypted,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pg: update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pg: update employee: %w", err)
	}
	if affected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (s *Employees) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from employees where id = $1`, id)
	if err != nil {
		return fmt.Errorf("pg: delete employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pg: delete employee: %w", err)
	}
	if affected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

// scopePredicate renders the scope filter as a SQL predicate, numbering
// placeholders after any already-bound args.
func scopePredicate(filter access.ScopeFilter, args []any) (string, []any) {
	switch filter.Kind {
	case access.FilterDepartment:
		args = append(args, filter.DepartmentID)
		return fmt.Sprintf("department_id = $%d", len(args)), args
	case access.FilterSelf:
		args = append(args, filter.OwnerIdentity)
		return fmt.Sprintf("id = $%d", len(args)), args
	default:
		return "", args
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.DepartmentID, &e.Position, &e.Email, &e.Status,
		&e.NameEncrypted, &e.NameDigest, &e.PhoneEncrypted, &e.PhoneDigest,
		&e.IDNumberEncrypted, &e.IDNumberDigest, &e.BankAccountEncrypted,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func collectEmployees(rows *sql.Rows) ([]employee.Employee, error) {
	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan employee: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: iterate employees: %w", err)
	}
	return out, nil
}
