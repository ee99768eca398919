package event

import (
	"context"
	"slot_machine/internal/converter"
	"slot_machine/internal/model"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisTimeout = time.Second

// RedisSink публикует события в канал Redis для внешних клиентов
type RedisSink struct {
	rdb     redis.UniversalClient
	channel string
	logger  *zap.Logger
}

func NewRedisSink(rdb redis.UniversalClient, channel string, logger *zap.Logger) *RedisSink {
	return &RedisSink{rdb: rdb, channel: channel, logger: logger.Named("redis")}
}

func (s *RedisSink) Publish(ctx context.Context, e model.Event) {
	payload, err := jsoniter.Marshal(converter.ToEventMessage(e))
	if err != nil {
		s.logger.Error("failed to encode event", zap.String("kind", string(e.Kind)), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisTimeout)
	defer cancel()

	if err = s.rdb.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.logger.Warn("failed to publish event", zap.String("channel", s.channel), zap.Error(err))
	}
}
