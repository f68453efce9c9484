package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
}

func strPtr(s string) *string { return &s }

func newMasterService() (*MasterService, *fakeMasterRepo, *recordingDispatcher) {
	repo := newFakeMasterRepo()
	dispatcher := &recordingDispatcher{}
	return NewMasterService(testConfig(), repo, dispatcher, zap.NewNop()), repo, dispatcher
}

func TestMasterCreateHashesPasswordAndPublishes(t *testing.T) {
	svc, repo, dispatcher := newMasterService()

	master, err := svc.Create(context.Background(), MasterInput{
		Name:     strPtr("Ivan"),
		Login:    strPtr("ivan"),
		Password: strPtr("s3cret"),
	})
	require.NoError(t, err)

	stored := repo.masters[master.ID]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(*stored.PasswordHash, "s3cret"))
	assert.Equal(t, DefaultStatusWork, stored.StatusWork)
	assert.Equal(t, []string{}, stored.Cities)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, events.EventPrincipalCreated, dispatcher.events[0].Type)
	assert.Equal(t, domain.RoleMaster, dispatcher.events[0].Role)
	assert.Equal(t, master.ID, dispatcher.events[0].SubjectID)
}

func TestMasterCreateRequiresName(t *testing.T) {
	svc, _, _ := newMasterService()

	_, err := svc.Create(context.Background(), MasterInput{Name: strPtr("  ")})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestMasterListScopesCities(t *testing.T) {
	svc, repo, _ := newMasterService()
	director := &domain.Principal{SubjectID: 7, Role: domain.RoleDirector, Cities: []string{"Saratov", "Engels"}}

	_, err := svc.List(context.Background(), director, MasterListFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Saratov", "Engels"}, repo.lastFilter.Cities)

	masters, err := svc.List(context.Background(), director, MasterListFilters{City: strPtr("Moscow")})
	require.NoError(t, err)
	assert.Empty(t, masters)
	assert.NotNil(t, repo.lastFilter.Cities)
	assert.Empty(t, repo.lastFilter.Cities)

	admin := &domain.Principal{SubjectID: 1, Role: domain.RoleCallcentreAdmin}
	_, err = svc.List(context.Background(), admin, MasterListFilters{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.Cities)
}

func TestMasterUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, repo, _ := newMasterService()
	created, err := svc.Create(context.Background(), MasterInput{Name: strPtr("Ivan"), Phone: strPtr("+7900")})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, MasterInput{StatusWork: strPtr("fired")})
	require.NoError(t, err)

	stored := repo.masters[created.ID]
	assert.Equal(t, "Ivan", stored.Name)
	assert.Equal(t, "+7900", *stored.Phone)
	assert.Equal(t, "fired", stored.StatusWork)
}

func TestMasterDeletePublishesAndMapsNotFound(t *testing.T) {
	svc, _, dispatcher := newMasterService()
	created, err := svc.Create(context.Background(), MasterInput{Name: strPtr("Ivan")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	last := dispatcher.events[len(dispatcher.events)-1]
	assert.Equal(t, events.EventPrincipalDeleted, last.Type)

	err = svc.Delete(context.Background(), created.ID)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "master not found", domainErr.Message)
}

func TestMasterUpdateDocumentsOwnership(t *testing.T) {
	svc, _, _ := newMasterService()
	own, err := svc.Create(context.Background(), MasterInput{Name: strPtr("Own")})
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), MasterInput{Name: strPtr("Other")})
	require.NoError(t, err)

	master := &domain.Principal{SubjectID: own.ID, Role: domain.RoleMaster}
	updated, err := svc.UpdateDocuments(context.Background(), master, own.ID, strPtr("contract.pdf"), nil)
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", *updated.ContractDoc)

	_, err = svc.UpdateDocuments(context.Background(), master, other.ID, strPtr("contract.pdf"), nil)
	assert.True(t, errors.Is(err, auth.ErrForbiddenOwnership))

	director := &domain.Principal{SubjectID: 99, Role: domain.RoleDirector}
	_, err = svc.UpdateDocuments(context.Background(), director, other.ID, nil, strPtr("passport.pdf"))
	assert.NoError(t, err)
}
