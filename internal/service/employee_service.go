package service

import (
	"context"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// EmployeeService serves the merged master and director roster. Writes go to masters.
type EmployeeService struct {
	employees repository.EmployeeRepository
	masters   *MasterService
	directors repository.DirectorRepository
}

// EmployeeListFilters define listing parameters.
type EmployeeListFilters struct {
	Role   *string
	City   *string
	Search *string
	Limit  int
	Offset int
}

// NewEmployeeService constructs the service.
func NewEmployeeService(employees repository.EmployeeRepository, masters *MasterService, directors repository.DirectorRepository) *EmployeeService {
	return &EmployeeService{employees: employees, masters: masters, directors: directors}
}

// ParseEmployeeRole validates the optional role filter.
func ParseEmployeeRole(raw *string) (*domain.Role, error) {
	if !nonEmpty(raw) {
		return nil, nil
	}
	role := domain.Role(*raw)
	if role != domain.RoleMaster && role != domain.RoleDirector {
		return nil, apperrors.NewValidationError(`role must be "master" or "director"`, map[string]any{"role": *raw})
	}
	return &role, nil
}

// List returns employees visible to the principal, narrowed to its cities.
func (s *EmployeeService) List(ctx context.Context, principal *domain.Principal, filters EmployeeListFilters) ([]domain.Employee, error) {
	role, err := ParseEmployeeRole(filters.Role)
	if err != nil {
		return nil, err
	}
	var requested []string
	if nonEmpty(filters.City) {
		requested = []string{*filters.City}
	}

	employees, err := s.employees.List(ctx, repository.EmployeeFilter{
		Role:   role,
		Cities: auth.ScopeCities(principal, requested),
		Search: filters.Search,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
	if err != nil {
		return nil, mapRepoError(err, "employee")
	}
	return employees, nil
}

// Get fetches one employee. role selects the table and defaults to master.
func (s *EmployeeService) Get(ctx context.Context, role *string, id int64) (*domain.Employee, error) {
	parsed, err := ParseEmployeeRole(role)
	if err != nil {
		return nil, err
	}

	if parsed != nil && *parsed == domain.RoleDirector {
		director, err := s.directors.GetByID(ctx, id)
		if err != nil {
			return nil, mapRepoError(err, "employee")
		}
		login := director.Login
		return &domain.Employee{
			ID:         director.ID,
			Role:       domain.RoleDirector,
			Name:       director.Name,
			Login:      &login,
			Cities:     director.Cities,
			Note:       director.Note,
			DateCreate: director.DateCreate,
		}, nil
	}

	master, err := s.masters.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status := master.StatusWork
	return &domain.Employee{
		ID:         master.ID,
		Role:       domain.RoleMaster,
		Name:       master.Name,
		Login:      master.Login,
		Cities:     master.Cities,
		StatusWork: &status,
		Note:       master.Note,
		DateCreate: master.DateCreate,
	}, nil
}

// Create registers a master through the employees surface.
func (s *EmployeeService) Create(ctx context.Context, input MasterInput) (*domain.Master, error) {
	return s.masters.Create(ctx, input)
}

// Update patches a master through the employees surface.
func (s *EmployeeService) Update(ctx context.Context, id int64, input MasterInput) (*domain.Master, error) {
	return s.masters.Update(ctx, id, input)
}
