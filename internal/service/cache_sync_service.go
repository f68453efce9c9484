package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
)

// CacheInvalidator drops cached existence answers.
type CacheInvalidator interface {
	Invalidate(role domain.Role, subjectID int64)
}

// InvalidationMessage is broadcast to other instances over Redis.
type InvalidationMessage struct {
	Instance  string      `json:"instance"`
	Role      domain.Role `json:"role"`
	SubjectID int64       `json:"subject_id"`
}

// CacheSyncService keeps existence caches coherent with personnel lifecycle events.
// Local invalidation always happens; with Redis configured the change is also
// broadcast so every instance drops its entry.
type CacheSyncService struct {
	dispatcher events.Dispatcher
	cache      CacheInvalidator
	client     *redis.Client
	channel    string
	instanceID string
	logger     *zap.Logger
}

// NewCacheSyncService creates the service. client may be nil.
func NewCacheSyncService(dispatcher events.Dispatcher, cache CacheInvalidator, client *redis.Client, cfg config.EventsConfig, logger *zap.Logger) *CacheSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheSyncService{
		dispatcher: dispatcher,
		cache:      cache,
		client:     client,
		channel:    cfg.InvalidationChannel,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (s *CacheSyncService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventPrincipalCreated, s.handlePrincipalChanged)
	s.dispatcher.Subscribe(events.EventPrincipalUpdated, s.handlePrincipalChanged)
	s.dispatcher.Subscribe(events.EventPrincipalDeleted, s.handlePrincipalChanged)
}

// Client returns the Redis client used for broadcasts, or nil.
func (s *CacheSyncService) Client() *redis.Client {
	return s.client
}

// Channel returns the broadcast channel name.
func (s *CacheSyncService) Channel() string {
	return s.channel
}

// InstanceID identifies this process in broadcast messages.
func (s *CacheSyncService) InstanceID() string {
	return s.instanceID
}

func (s *CacheSyncService) handlePrincipalChanged(ctx context.Context, event events.Event) error {
	s.logger.Info("principal changed",
		zap.String("event_type", string(event.Type)),
		zap.String("role", event.Role.String()),
		zap.Int64("subject_id", event.SubjectID))
	s.cache.Invalidate(event.Role, event.SubjectID)

	if s.client == nil {
		return nil
	}
	payload, err := json.Marshal(InvalidationMessage{
		Instance:  s.instanceID,
		Role:      event.Role,
		SubjectID: event.SubjectID,
	})
	if err != nil {
		return err
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("broadcast invalidation: %w", err)
	}
	return nil
}

// ApplyRemote handles a broadcast received from Redis. Messages sent by this
// instance are ignored since they were applied locally already.
func (s *CacheSyncService) ApplyRemote(payload string) error {
	var msg InvalidationMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return fmt.Errorf("decode invalidation: %w", err)
	}
	if msg.Instance == s.instanceID {
		return nil
	}
	if !msg.Role.Valid() || msg.SubjectID <= 0 {
		return fmt.Errorf("invalid invalidation target %q/%d", msg.Role, msg.SubjectID)
	}
	s.logger.Debug("remote invalidation",
		zap.String("from", msg.Instance),
		zap.String("role", msg.Role.String()),
		zap.Int64("subject_id", msg.SubjectID))
	s.cache.Invalidate(msg.Role, msg.SubjectID)
	return nil
}
