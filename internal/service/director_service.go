package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// DirectorService manages director records.
type DirectorService struct {
	directors  repository.DirectorRepository
	events     lifecycle
	bcryptCost int
}

// DirectorInput carries create and update fields. Nil fields are left unchanged on update.
type DirectorInput struct {
	Name        *string
	Login       *string
	Password    *string
	Cities      []string
	TgID        *string
	Note        *string
	ContractDoc *string
	PassportDoc *string
}

// DirectorListFilters define listing parameters.
type DirectorListFilters struct {
	Search *string
	Limit  int
	Offset int
}

// NewDirectorService constructs the service.
func NewDirectorService(cfg config.Config, directors repository.DirectorRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DirectorService {
	return &DirectorService{
		directors:  directors,
		events:     lifecycle{dispatcher: dispatcher, logger: logger},
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns directors. A director caller only sees itself.
func (s *DirectorService) List(ctx context.Context, principal *domain.Principal, filters DirectorListFilters) ([]domain.Director, error) {
	filter := repository.DirectorFilter{Search: filters.Search, Limit: filters.Limit, Offset: filters.Offset}
	if principal.HasRole(domain.RoleDirector) {
		filter.IDs = []int64{principal.SubjectID}
	}
	directors, err := s.directors.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "director")
	}
	return directors, nil
}

// Get fetches a director. Directors may only view their own record.
func (s *DirectorService) Get(ctx context.Context, principal *domain.Principal, id int64) (*domain.Director, error) {
	if err := auth.RequireOwnership(principal, id, domain.RoleDirector); err != nil {
		return nil, err
	}
	director, err := s.directors.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "director")
	}
	return director, nil
}

// Create registers a new director.
func (s *DirectorService) Create(ctx context.Context, input DirectorInput) (*domain.Director, error) {
	var name, login, password string
	if input.Name != nil {
		name = *input.Name
	}
	if input.Login != nil {
		login = *input.Login
	}
	if input.Password != nil {
		password = *input.Password
	}
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	if err := requireText("login", login); err != nil {
		return nil, err
	}
	if err := requireText("password", password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	director := &domain.Director{
		Name:         name,
		Login:        login,
		PasswordHash: hashed,
		Cities:       input.Cities,
		TgID:         input.TgID,
		Note:         input.Note,
		ContractDoc:  input.ContractDoc,
		PassportDoc:  input.PassportDoc,
	}
	if director.Cities == nil {
		director.Cities = []string{}
	}
	if err := s.directors.Create(ctx, director); err != nil {
		return nil, mapRepoError(err, "director")
	}

	s.events.publish(ctx, events.EventPrincipalCreated, domain.RoleDirector, director.ID)
	return director, nil
}

// Update patches a director. Directors may only update their own record.
func (s *DirectorService) Update(ctx context.Context, principal *domain.Principal, id int64, input DirectorInput) (*domain.Director, error) {
	if err := auth.RequireOwnership(principal, id, domain.RoleDirector); err != nil {
		return nil, err
	}
	director, err := s.directors.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "director")
	}

	if nonEmpty(input.Name) {
		director.Name = *input.Name
	}
	if nonEmpty(input.Login) {
		director.Login = *input.Login
	}
	if nonEmpty(input.Password) {
		hashed, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		director.PasswordHash = hashed
	}
	if input.Cities != nil {
		director.Cities = input.Cities
	}
	if nonEmpty(input.TgID) {
		director.TgID = input.TgID
	}
	if input.Note != nil {
		director.Note = input.Note
	}
	if nonEmpty(input.ContractDoc) {
		director.ContractDoc = input.ContractDoc
	}
	if nonEmpty(input.PassportDoc) {
		director.PassportDoc = input.PassportDoc
	}

	if err := s.directors.Update(ctx, director); err != nil {
		return nil, mapRepoError(err, "director")
	}
	s.events.publish(ctx, events.EventPrincipalUpdated, domain.RoleDirector, director.ID)
	return director, nil
}

// Delete removes a director. A director can never delete itself.
func (s *DirectorService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	if err := auth.ForbidSelfAction(principal, id, domain.RoleDirector); err != nil {
		return err
	}
	if err := s.directors.Delete(ctx, id); err != nil {
		return mapRepoError(err, "director")
	}
	s.events.publish(ctx, events.EventPrincipalDeleted, domain.RoleDirector, id)
	return nil
}
