package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Attempt is one delivery attempt as recorded in the log.
type Attempt struct {
	Provider  string        `json:"provider"`
	Kind      Kind          `json:"kind"`
	To        string        `json:"to"`
	Subject   string        `json:"subject"`
	Success   bool          `json:"success"`
	MessageID string        `json:"messageId,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"durationNs"`
	At        time.Time     `json:"at"`
}

// DeliveryLog stores recent attempts for operators.
type DeliveryLog interface {
	Record(ctx context.Context, a Attempt) error
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}

const (
	DefaultDeliveryLogKey = "email:delivery_log"
	DefaultDeliveryLogMax = 500
)

// RedisDeliveryLog keeps the newest attempts in a capped Redis list.
type RedisDeliveryLog struct {
	client *redis.Client
	key    string
	max    int64
}

func NewRedisDeliveryLog(client *redis.Client, key string, max int64) *RedisDeliveryLog {
	if key == "" {
		key = DefaultDeliveryLogKey
	}
	if max <= 0 {
		max = DefaultDeliveryLogMax
	}
	return &RedisDeliveryLog{client: client, key: key, max: max}
}

func (l *RedisDeliveryLog) Record(ctx context.Context, a Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, 0, l.max-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit attempts, newest first.
func (l *RedisDeliveryLog) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 || int64(limit) > l.max {
		limit = int(l.max)
	}
	raw, err := l.client.LRange(ctx, l.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Attempt, 0, len(raw))
	for _, item := range raw {
		var a Attempt
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// NopDeliveryLog discards attempts. Used when Redis is not available.
type NopDeliveryLog struct{}

func (NopDeliveryLog) Record(context.Context, Attempt) error { return nil }

func (NopDeliveryLog) Recent(context.Context, int) ([]Attempt, error) { return []Attempt{}, nil }
