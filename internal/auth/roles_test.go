package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/users-service/internal/domain"
)

func TestRoutePolicyAuthorize(t *testing.T) {
	director := &domain.Principal{SubjectID: 7, Role: domain.RoleDirector}
	master := &domain.Principal{SubjectID: 5, Role: domain.RoleMaster}

	policy := AllowRoles(domain.RoleDirector, domain.RoleCallcentreAdmin)
	assert.NoError(t, policy.Authorize(director))
	assert.ErrorIs(t, policy.Authorize(master), ErrForbiddenRole)

	assert.NoError(t, AnyAuthenticated().Authorize(master))
}

func TestRequireOwnership(t *testing.T) {
	director := &domain.Principal{SubjectID: 7, Role: domain.RoleDirector}
	admin := &domain.Principal{SubjectID: 1, Role: domain.RoleAdmin}

	assert.NoError(t, RequireOwnership(director, 7, domain.RoleDirector))
	assert.ErrorIs(t, RequireOwnership(director, 8, domain.RoleDirector), ErrForbiddenOwnership)

	// Roles outside the scoped set are not restricted.
	assert.NoError(t, RequireOwnership(admin, 8, domain.RoleDirector))

	// With no scoped roles everyone is restricted.
	assert.ErrorIs(t, RequireOwnership(admin, 8), ErrForbiddenOwnership)
	assert.ErrorIs(t, RequireOwnership(nil, 8), ErrForbiddenOwnership)
}

func TestForbidSelfAction(t *testing.T) {
	director := &domain.Principal{SubjectID: 7, Role: domain.RoleDirector}
	admin := &domain.Principal{SubjectID: 7, Role: domain.RoleAdmin}

	assert.ErrorIs(t, ForbidSelfAction(director, 7, domain.RoleDirector), ErrForbiddenSelfAction)
	assert.NoError(t, ForbidSelfAction(director, 8, domain.RoleDirector))
	assert.NoError(t, ForbidSelfAction(admin, 7, domain.RoleDirector))
}

func TestScopeCities(t *testing.T) {
	unrestricted := &domain.Principal{Role: domain.RoleCallcentreAdmin}
	assert.Nil(t, ScopeCities(unrestricted, nil))
	assert.Equal(t, []string{"Moscow"}, ScopeCities(unrestricted, []string{"Moscow"}))

	director := &domain.Principal{Role: domain.RoleDirector, Cities: []string{"Saratov", "Engels"}}
	assert.Equal(t, []string{"Saratov", "Engels"}, ScopeCities(director, nil))
	assert.Equal(t, []string{"Engels"}, ScopeCities(director, []string{"Engels", "Moscow"}))

	outside := ScopeCities(director, []string{"Moscow"})
	assert.NotNil(t, outside)
	assert.Empty(t, outside)
}
