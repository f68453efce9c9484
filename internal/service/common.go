package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// DefaultStatusWork is assigned to new personnel records without an explicit status.
const DefaultStatusWork = "active"

func mapRepoError(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}

// lifecycle publishes principal lifecycle events. Publication failures are logged;
// the database write they describe has already succeeded.
type lifecycle struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (l lifecycle) publish(ctx context.Context, eventType events.EventType, role domain.Role, id int64) {
	if l.dispatcher == nil {
		return
	}
	if err := l.dispatcher.Publish(ctx, events.NewPrincipalEvent(eventType, role, id)); err != nil && l.logger != nil {
		l.logger.Warn("principal event delivery failed",
			zap.String("event_type", string(eventType)),
			zap.String("role", role.String()),
			zap.Int64("subject_id", id),
			zap.Error(err))
	}
}

func hashOptional(password *string, cost int) (*string, error) {
	if password == nil || *password == "" {
		return nil, nil
	}
	hashed, err := auth.HashPassword(*password, cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &hashed, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field+" is required", map[string]any{"field": field})
	}
	return nil
}

func nonEmpty(value *string) bool {
	return value != nil && *value != ""
}
