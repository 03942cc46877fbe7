// Package realtime broadcasts transient progress events to live clients.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// Publisher delivers progress events to any listener on an upload's
// channel. Delivery is fire-and-forget: a dropped event never affects the
// data being persisted, only live UI feedback.
type Publisher interface {
	Broadcast(ctx context.Context, uploadID int64, event models.ProgressEvent)
}

type envelope struct {
	Event   string               `json:"event"`
	Payload models.ProgressEvent `json:"payload"`
}

// RedisPublisher publishes progress envelopes on the "upload:{id}" channel.
type RedisPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher creates a RedisPublisher.
func NewRedisPublisher(client *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, logger: logger}
}

func (p *RedisPublisher) Broadcast(ctx context.Context, uploadID int64, event models.ProgressEvent) {
	data, err := json.Marshal(envelope{Event: "progress", Payload: event})
	if err != nil {
		p.logger.Warn("failed to encode progress event", zap.Int64("upload_id", uploadID), zap.Error(err))
		return
	}

	channel := ChannelName(uploadID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.logger.Warn("failed to broadcast progress",
			zap.String("channel", channel),
			zap.Int("progress", event.Progress),
			zap.Error(err),
		)
	}
}

// ChannelName returns the pub/sub channel for one upload.
func ChannelName(uploadID int64) string {
	return fmt.Sprintf("upload:%d", uploadID)
}
