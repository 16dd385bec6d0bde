package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kadrio.org/internal/auth"
)

var _ auth.UserStore = (*Users)(nil)

// Users implements auth.UserStore on PostgreSQL.
type Users struct {
	db *sql.DB
}

const userColumns = `id, email, password_hash, role, data_scope,
	department_id, employee_id, can_view_sensitive, status,
	created_at, updated_at`

func (s *Users) Create(ctx context.Context, u auth.User) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users (
			id, email, password_hash, role, data_scope,
			department_id, employee_id, can_view_sensitive, status,
			created_at, updated_at
		) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.DataScope,
		u.DepartmentID, u.EmployeeID, u.CanViewSensitive, u.Status,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.ErrConflict
		}
		return fmt.Errorf("pg: insert user: %w", err)
	}
	return nil
}

func (s *Users) Find(ctx context.Context, id string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id = $1`, id)
	return scanUser(row)
}

func (s *Users) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email = $1`, email)
	return scanUser(row)
}

func scanUser(row rowScanner) (auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.DataScope,
		&u.DepartmentID, &u.EmployeeID, &u.CanViewSensitive, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("pg: scan user: %w", err)
	}
	return u, nil
}
