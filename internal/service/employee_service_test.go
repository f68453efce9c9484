package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

type fakeEmployeeRepo struct {
	lastFilter repository.EmployeeFilter
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	r.lastFilter = filter
	return []domain.Employee{}, nil
}

type fakePrincipalRepo struct {
	profiles map[domain.Role]*domain.Profile
}

func (r *fakePrincipalRepo) ExistsByRoleAndID(_ context.Context, role domain.Role, id int64) (bool, error) {
	p, ok := r.profiles[role]
	return ok && p.ID == id, nil
}

func (r *fakePrincipalRepo) GetProfile(_ context.Context, role domain.Role, id int64) (*domain.Profile, error) {
	if role == domain.RoleAdmin {
		return nil, repository.ErrNoProfile
	}
	p, ok := r.profiles[role]
	if !ok || p.ID != id {
		return nil, pgxNoRows
	}
	return p, nil
}

func TestEmployeeListValidatesRoleAndScopesCities(t *testing.T) {
	employees := &fakeEmployeeRepo{}
	masters, _, _ := newMasterService()
	svc := NewEmployeeService(employees, masters, newFakeDirectorRepo())
	director := &domain.Principal{SubjectID: 7, Role: domain.RoleDirector, Cities: []string{"Saratov"}}

	_, err := svc.List(context.Background(), director, EmployeeListFilters{Role: strPtr("operator")})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.List(context.Background(), director, EmployeeListFilters{Role: strPtr("master"), Search: strPtr("iv")})
	require.NoError(t, err)
	require.NotNil(t, employees.lastFilter.Role)
	assert.Equal(t, domain.RoleMaster, *employees.lastFilter.Role)
	assert.Equal(t, []string{"Saratov"}, employees.lastFilter.Cities)
}

func TestEmployeeGetByRole(t *testing.T) {
	masters, _, _ := newMasterService()
	directors := newFakeDirectorRepo()
	svc := NewEmployeeService(&fakeEmployeeRepo{}, masters, directors)

	master, err := masters.Create(context.Background(), MasterInput{Name: strPtr("Ivan")})
	require.NoError(t, err)
	directorSvc := NewDirectorService(testConfig(), directors, nil, zap.NewNop())
	_, err = directorSvc.Create(context.Background(), DirectorInput{Name: strPtr("Boss"), Login: strPtr("boss"), Password: strPtr("pw")})
	require.NoError(t, err)

	employee, err := svc.Get(context.Background(), nil, master.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMaster, employee.Role)
	assert.Equal(t, "Ivan", employee.Name)

	employee, err = svc.Get(context.Background(), strPtr("director"), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDirector, employee.Role)
	assert.Equal(t, "boss", *employee.Login)
}

func TestProfileService(t *testing.T) {
	repo := &fakePrincipalRepo{profiles: map[domain.Role]*domain.Profile{
		domain.RoleMaster: {ID: 5, Role: domain.RoleMaster, Name: "Ann", Login: "ann"},
	}}
	svc := NewProfileService(repo)

	profile, err := svc.Get(context.Background(), &domain.Principal{SubjectID: 5, Role: domain.RoleMaster})
	require.NoError(t, err)
	assert.Equal(t, "ann", profile.Login)

	_, err = svc.Get(context.Background(), &domain.Principal{SubjectID: 1, Role: domain.RoleAdmin})
	assert.Equal(t, "user not found", apperrors.ToDomainError(err).Message)

	_, err = svc.Get(context.Background(), &domain.Principal{SubjectID: 6, Role: domain.RoleMaster})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
