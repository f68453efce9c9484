package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/repository"
)

// MasterService manages master records.
type MasterService struct {
	masters    repository.MasterRepository
	events     lifecycle
	bcryptCost int
}

// MasterListFilters define listing parameters.
type MasterListFilters struct {
	City       *string
	StatusWork *string
	Search     *string
	Limit      int
	Offset     int
}

// MasterInput carries create and update fields. Nil fields are left unchanged on update.
type MasterInput struct {
	Name       *string
	Login      *string
	Password   *string
	Phone      *string
	Cities     []string
	StatusWork *string
	Note       *string
}

// NewMasterService constructs the service.
func NewMasterService(cfg config.Config, masters repository.MasterRepository, dispatcher events.Dispatcher, logger *zap.Logger) *MasterService {
	return &MasterService{
		masters:    masters,
		events:     lifecycle{dispatcher: dispatcher, logger: logger},
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns masters visible to the principal. City-restricted principals only
// see masters working in one of their cities.
func (s *MasterService) List(ctx context.Context, principal *domain.Principal, filters MasterListFilters) ([]domain.Master, error) {
	var requested []string
	if nonEmpty(filters.City) {
		requested = []string{*filters.City}
	}
	masters, err := s.masters.List(ctx, repository.MasterFilter{
		Cities:     auth.ScopeCities(principal, requested),
		StatusWork: filters.StatusWork,
		Search:     filters.Search,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, mapRepoError(err, "master")
	}
	return masters, nil
}

// Get fetches a master.
func (s *MasterService) Get(ctx context.Context, id int64) (*domain.Master, error) {
	master, err := s.masters.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "master")
	}
	return master, nil
}

// Create registers a new master.
func (s *MasterService) Create(ctx context.Context, input MasterInput) (*domain.Master, error) {
	name := ""
	if input.Name != nil {
		name = *input.Name
	}
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	hashed, err := hashOptional(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	master := &domain.Master{
		Name:         name,
		Login:        input.Login,
		PasswordHash: hashed,
		Phone:        input.Phone,
		Cities:       input.Cities,
		StatusWork:   DefaultStatusWork,
		Note:         input.Note,
	}
	if nonEmpty(input.StatusWork) {
		master.StatusWork = *input.StatusWork
	}
	if master.Cities == nil {
		master.Cities = []string{}
	}
	if err := s.masters.Create(ctx, master); err != nil {
		return nil, mapRepoError(err, "master")
	}

	s.events.publish(ctx, events.EventPrincipalCreated, domain.RoleMaster, master.ID)
	return master, nil
}

// Update patches an existing master.
func (s *MasterService) Update(ctx context.Context, id int64, input MasterInput) (*domain.Master, error) {
	master, err := s.masters.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "master")
	}

	if nonEmpty(input.Name) {
		master.Name = *input.Name
	}
	if nonEmpty(input.Login) {
		master.Login = input.Login
	}
	if nonEmpty(input.Password) {
		hashed, err := hashOptional(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		master.PasswordHash = hashed
	}
	if nonEmpty(input.Phone) {
		master.Phone = input.Phone
	}
	if input.Cities != nil {
		master.Cities = input.Cities
	}
	if nonEmpty(input.StatusWork) {
		master.StatusWork = *input.StatusWork
	}
	if input.Note != nil {
		master.Note = input.Note
	}

	if err := s.masters.Update(ctx, master); err != nil {
		return nil, mapRepoError(err, "master")
	}
	s.events.publish(ctx, events.EventPrincipalUpdated, domain.RoleMaster, master.ID)
	return master, nil
}

// Delete removes a master; the existence cache entry is invalidated through the
// principal.deleted event.
func (s *MasterService) Delete(ctx context.Context, id int64) error {
	if err := s.masters.Delete(ctx, id); err != nil {
		return mapRepoError(err, "master")
	}
	s.events.publish(ctx, events.EventPrincipalDeleted, domain.RoleMaster, id)
	return nil
}

// UpdateDocuments attaches document references. Masters may only touch their own record.
func (s *MasterService) UpdateDocuments(ctx context.Context, principal *domain.Principal, id int64, contractDoc, passportDoc *string) (*domain.Master, error) {
	if err := auth.RequireOwnership(principal, id, domain.RoleMaster); err != nil {
		return nil, err
	}
	if !nonEmpty(contractDoc) {
		contractDoc = nil
	}
	if !nonEmpty(passportDoc) {
		passportDoc = nil
	}
	master, err := s.masters.UpdateDocuments(ctx, id, contractDoc, passportDoc)
	if err != nil {
		return nil, mapRepoError(err, "master")
	}
	return master, nil
}
