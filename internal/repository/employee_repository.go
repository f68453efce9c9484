package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// EmployeeRepository reads the merged master and director roster.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
}

// EmployeeFilter narrows the merged roster. Role, when set, is master or director.
type EmployeeFilter struct {
	Role   *domain.Role
	Cities []string
	Search *string
	Limit  int
	Offset int
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository constructs repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	if filter.Cities != nil && len(filter.Cities) == 0 {
		return []domain.Employee{}, nil
	}

	query, args := buildEmployeeListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Role,
			&employee.Name,
			&employee.Login,
			&employee.Cities,
			&employee.StatusWork,
			&employee.Note,
			&employee.DateCreate,
		); err != nil {
			return nil, err
		}
		result = append(result, employee)
	}
	return result, rows.Err()
}

func buildEmployeeListQuery(filter EmployeeFilter) (string, []any) {
	args := []any{}
	clauses := []string{}

	if len(filter.Cities) > 0 {
		args = append(args, filter.Cities)
		clauses = append(clauses, fmt.Sprintf("cities && $%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR login ILIKE $%d)", n, n))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	masters := `SELECT id, 'master' AS role, name, login, cities, status_work, note, date_create FROM masters` + where
	directors := `SELECT id, 'director' AS role, name, login, cities, NULL::text AS status_work, note, date_create FROM directors` + where

	var parts []string
	switch {
	case filter.Role == nil:
		parts = []string{masters, directors}
	case *filter.Role == domain.RoleMaster:
		parts = []string{masters}
	case *filter.Role == domain.RoleDirector:
		parts = []string{directors}
	}

	query := strings.Join(parts, " UNION ALL ") + " ORDER BY date_create DESC" + pageClause(filter.Limit, filter.Offset)
	return query, args
}
