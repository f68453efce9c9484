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

// OperatorService manages call-centre admins and operators.
type OperatorService struct {
	operators  repository.OperatorRepository
	events     lifecycle
	bcryptCost int
}

// OperatorInput carries create and update fields. Nil fields are left unchanged on update.
type OperatorInput struct {
	Name       *string
	Login      *string
	Password   *string
	City       *string
	SipAddress *string
	StatusWork *string
	Note       *string
}

// OperatorListing groups both operator tables when no type is requested.
type OperatorListing struct {
	Admins    []domain.Operator
	Operators []domain.Operator
}

// NewOperatorService constructs the service.
func NewOperatorService(cfg config.Config, operators repository.OperatorRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OperatorService {
	return &OperatorService{
		operators:  operators,
		events:     lifecycle{dispatcher: dispatcher, logger: logger},
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// ParseOperatorType validates the "type" parameter.
func ParseOperatorType(raw string) (domain.OperatorType, error) {
	opType := domain.OperatorType(raw)
	if !opType.Valid() {
		return "", apperrors.NewValidationError(`type must be "admin" or "operator"`, map[string]any{"type": raw})
	}
	return opType, nil
}

// List returns one table when opType is set, otherwise both.
func (s *OperatorService) List(ctx context.Context, opType *domain.OperatorType) (*OperatorListing, error) {
	listing := &OperatorListing{}
	if opType == nil || *opType == domain.OperatorTypeAdmin {
		admins, err := s.operators.List(ctx, domain.OperatorTypeAdmin)
		if err != nil {
			return nil, mapRepoError(err, "operator")
		}
		listing.Admins = admins
	}
	if opType == nil || *opType == domain.OperatorTypeOperator {
		operators, err := s.operators.List(ctx, domain.OperatorTypeOperator)
		if err != nil {
			return nil, mapRepoError(err, "operator")
		}
		listing.Operators = operators
	}
	return listing, nil
}

// Get fetches a single admin or operator.
func (s *OperatorService) Get(ctx context.Context, opType domain.OperatorType, id int64) (*domain.Operator, error) {
	operator, err := s.operators.GetByID(ctx, opType, id)
	if err != nil {
		return nil, mapRepoError(err, string(opType))
	}
	return operator, nil
}

// Create registers a new admin or operator.
func (s *OperatorService) Create(ctx context.Context, opType domain.OperatorType, input OperatorInput) (*domain.Operator, error) {
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
	operator := &domain.Operator{
		Type:         opType,
		Name:         name,
		Login:        login,
		PasswordHash: hashed,
		City:         input.City,
		SipAddress:   input.SipAddress,
		StatusWork:   DefaultStatusWork,
		Note:         input.Note,
	}
	if nonEmpty(input.StatusWork) {
		operator.StatusWork = *input.StatusWork
	}
	if err := s.operators.Create(ctx, operator); err != nil {
		return nil, mapRepoError(err, string(opType))
	}

	s.events.publish(ctx, events.EventPrincipalCreated, opType.Role(), operator.ID)
	return operator, nil
}

// Update patches an admin or operator.
func (s *OperatorService) Update(ctx context.Context, opType domain.OperatorType, id int64, input OperatorInput) (*domain.Operator, error) {
	operator, err := s.operators.GetByID(ctx, opType, id)
	if err != nil {
		return nil, mapRepoError(err, string(opType))
	}

	if nonEmpty(input.Name) {
		operator.Name = *input.Name
	}
	if nonEmpty(input.Login) {
		operator.Login = *input.Login
	}
	if nonEmpty(input.Password) {
		hashed, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		operator.PasswordHash = hashed
	}
	if input.City != nil {
		operator.City = input.City
	}
	if input.SipAddress != nil {
		operator.SipAddress = input.SipAddress
	}
	if nonEmpty(input.StatusWork) {
		operator.StatusWork = *input.StatusWork
	}
	if input.Note != nil {
		operator.Note = input.Note
	}

	if err := s.operators.Update(ctx, operator); err != nil {
		return nil, mapRepoError(err, string(opType))
	}
	s.events.publish(ctx, events.EventPrincipalUpdated, opType.Role(), operator.ID)
	return operator, nil
}

// Delete removes an admin or operator.
func (s *OperatorService) Delete(ctx context.Context, opType domain.OperatorType, id int64) error {
	if err := s.operators.Delete(ctx, opType, id); err != nil {
		return mapRepoError(err, string(opType))
	}
	s.events.publish(ctx, events.EventPrincipalDeleted, opType.Role(), id)
	return nil
}
