package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muhammadheryan/contacts/model"
	goredis "github.com/redis/go-redis/v9"
)

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	SetUser(ctx context.Context, user *model.User, ttl time.Duration) error
	DeleteUser(ctx context.Context, id uint64) error
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation. A nil client disables caching:
// reads miss and writes are no-ops.
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

func userKey(id uint64) string {
	return fmt.Sprintf("user:%d", id)
}

// Get retrieves a value by key from Redis. A missing key returns "" and no error.
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (r *redis) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// GetUser returns the cached wire user, or nil on a cache miss.
func (r *redis) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	val, err := r.Get(ctx, userKey(id))
	if err != nil || val == "" {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, fmt.Errorf("decode cached user %d: %w", id, err)
	}
	return &user, nil
}

func (r *redis) SetUser(ctx context.Context, user *model.User, ttl time.Duration) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.SetWithTTL(ctx, userKey(user.ID), string(raw), ttl)
}

func (r *redis) DeleteUser(ctx context.Context, id uint64) error {
	return r.Delete(ctx, userKey(id))
}
