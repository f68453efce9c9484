package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

func seededDirectors(t *testing.T) (*DirectorService, *fakeDirectorRepo, *recordingDispatcher) {
	t.Helper()
	repo := newFakeDirectorRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewDirectorService(testConfig(), repo, dispatcher, zap.NewNop())
	for _, login := range []string{"seven", "eight"} {
		_, err := svc.Create(context.Background(), DirectorInput{Name: strPtr(login), Login: strPtr(login), Password: strPtr("pw")})
		require.NoError(t, err)
	}
	return svc, repo, dispatcher
}

func TestDirectorGetOwnership(t *testing.T) {
	svc, _, _ := seededDirectors(t)
	director := &domain.Principal{SubjectID: 1, Role: domain.RoleDirector}

	got, err := svc.Get(context.Background(), director, 1)
	require.NoError(t, err)
	assert.Equal(t, "seven", got.Login)

	_, err = svc.Get(context.Background(), director, 2)
	assert.ErrorIs(t, err, auth.ErrForbiddenOwnership)

	admin := &domain.Principal{SubjectID: 1, Role: domain.RoleAdmin}
	_, err = svc.Get(context.Background(), admin, 2)
	assert.NoError(t, err)
}

func TestDirectorListOnlySelfForDirectors(t *testing.T) {
	svc, repo, _ := seededDirectors(t)

	list, err := svc.List(context.Background(), &domain.Principal{SubjectID: 2, Role: domain.RoleDirector}, DirectorListFilters{})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.lastFilter.IDs)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	list, err = svc.List(context.Background(), &domain.Principal{SubjectID: 1, Role: domain.RoleCallcentreAdmin}, DirectorListFilters{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.IDs)
	assert.Len(t, list, 2)
}

func TestDirectorCreateValidation(t *testing.T) {
	svc, _, _ := seededDirectors(t)

	_, err := svc.Create(context.Background(), DirectorInput{Name: strPtr("x"), Login: strPtr("x")})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "password", domainErr.Details["field"])
}

func TestDirectorUpdateOwnership(t *testing.T) {
	svc, repo, _ := seededDirectors(t)
	director := &domain.Principal{SubjectID: 1, Role: domain.RoleDirector}

	_, err := svc.Update(context.Background(), director, 2, DirectorInput{Name: strPtr("hijack")})
	assert.ErrorIs(t, err, auth.ErrForbiddenOwnership)
	assert.Equal(t, "eight", repo.directors[2].Name)

	_, err = svc.Update(context.Background(), director, 1, DirectorInput{Name: strPtr("Seven")})
	require.NoError(t, err)
	assert.Equal(t, "Seven", repo.directors[1].Name)
}

func TestDirectorDeleteForbidsSelf(t *testing.T) {
	svc, repo, dispatcher := seededDirectors(t)

	err := svc.Delete(context.Background(), &domain.Principal{SubjectID: 1, Role: domain.RoleDirector}, 1)
	assert.ErrorIs(t, err, auth.ErrForbiddenSelfAction)
	assert.Contains(t, repo.directors, int64(1))

	require.NoError(t, svc.Delete(context.Background(), &domain.Principal{SubjectID: 3, Role: domain.RoleAdmin}, 1))
	assert.NotContains(t, repo.directors, int64(1))
	last := dispatcher.events[len(dispatcher.events)-1]
	assert.Equal(t, events.EventPrincipalDeleted, last.Type)
	assert.Equal(t, domain.RoleDirector, last.Role)
}
