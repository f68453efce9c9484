package service

import (
	"context"
	"errors"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// ProfileService resolves the caller's own profile.
type ProfileService struct {
	principals repository.PrincipalRepository
}

// NewProfileService constructs the service.
func NewProfileService(principals repository.PrincipalRepository) *ProfileService {
	return &ProfileService{principals: principals}
}

// Get returns the profile backing the principal.
func (s *ProfileService) Get(ctx context.Context, principal *domain.Principal) (*domain.Profile, error) {
	profile, err := s.principals.GetProfile(ctx, principal.Role, principal.SubjectID)
	if errors.Is(err, repository.ErrNoProfile) {
		return nil, apperrors.NewNotFound("user", nil)
	}
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	return profile, nil
}
