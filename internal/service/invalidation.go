package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/cache"
	"github.com/relasjon/crm/pkg/logger"
)

// Publisher fans invalidation hints out to other instances
type Publisher interface {
	Publish(ctx context.Context, paths []string) error
}

// PageInvalidator evicts cached pages below each path and forwards the hint
// to an optional Publisher.
type PageInvalidator struct {
	cache     cache.Cache
	publisher Publisher
	logger    logger.Logger
}

func NewPageInvalidator(pages cache.Cache, publisher Publisher, log logger.Logger) *PageInvalidator {
	return &PageInvalidator{cache: pages, publisher: publisher, logger: log}
}

func (i *PageInvalidator) Invalidate(ctx context.Context, paths ...string) error {
	i.evict(paths)
	if i.publisher == nil {
		return nil
	}
	if err := i.publisher.Publish(ctx, paths); err != nil {
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	return nil
}

func (i *PageInvalidator) evict(paths []string) {
	if i.cache == nil {
		return
	}
	removed := 0
	for _, p := range paths {
		removed += i.cache.DeletePrefix(p)
	}
	if removed > 0 {
		i.logger.WithFields(map[string]interface{}{
			"paths":   paths,
			"removed": removed,
		}).Debug("Evicted cached pages")
	}
}

// RedisPublisher broadcasts invalidation hints on a Redis channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to url. The connection is verified lazily on first use.
func NewRedisPublisher(url, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if channel == "" {
		channel = "crm:invalidate"
	}
	return &RedisPublisher{client: redis.NewClient(opts), channel: channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, paths []string) error {
	payload, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Listen evicts the local cache for every hint published by any instance.
// It returns when ctx is done.
func (p *RedisPublisher) Listen(ctx context.Context, target *PageInvalidator) {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var paths []string
			if err := json.Unmarshal([]byte(msg.Payload), &paths); err != nil {
				target.logger.Warn(fmt.Sprintf("Ignoring malformed invalidation message: %v", err))
				continue
			}
			target.evict(paths)
		}
	}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

var _ domain.Invalidator = (*PageInvalidator)(nil)
