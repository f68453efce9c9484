package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/service"
)

// StartCacheSyncWorker registers lifecycle handlers and, when Redis is configured,
// relays invalidations broadcast by other instances into the local cache. The
// returned stop function closes the subscription and waits for the relay to exit.
func StartCacheSyncWorker(ctx context.Context, cacheSync *service.CacheSyncService, logger *zap.Logger) (func(), error) {
	if cacheSync == nil {
		return func() {}, nil
	}
	cacheSync.RegisterHandlers()

	client := cacheSync.Client()
	if client == nil {
		return func() {}, nil
	}

	pubsub := client.Subscribe(ctx, cacheSync.Channel())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	logger.Info("cache invalidation relay started", zap.String("channel", cacheSync.Channel()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range pubsub.Channel() {
			if err := cacheSync.ApplyRemote(msg.Payload); err != nil {
				logger.Warn("dropping invalidation message", zap.Error(err))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = pubsub.Close()
			wg.Wait()
			logger.Info("cache invalidation relay stopped")
		})
	}, nil
}
