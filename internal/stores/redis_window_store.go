package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dynamic-routing/internal/models"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "success-rate:window:"

// RedisOptions configures the redis client behind the redis window store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient connects to redis and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// redisWindowStore stores each window as one JSON string value. Conditional writes use
// WATCH/MULTI: the transaction is discarded when another client touches the key between
// the version check and EXEC.
//
// Retention is a storage policy: with ttl > 0 every write refreshes the key expiry, so a
// label that stops receiving updates eventually disappears and reads as empty again.
type redisWindowStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

func NewRedisWindowStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) WindowStore {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &redisWindowStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *redisWindowStore) Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error) {
	return s.get(ctx, s.client, s.redisKey(key))
}

func (s *redisWindowStore) Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error {
	payload, err := encodeWindow(expectedVersion+1, window)
	if err != nil {
		return err
	}
	k := s.redisKey(key)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.get(ctx, tx, k)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, payload, s.ttl)
			return nil
		})
		return err
	}, k)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrVersionConflict
	}
	if err != nil && !errors.Is(err, ErrVersionConflict) {
		return fmt.Errorf("failed to put window: %w", err)
	}
	return err
}

// redisGetter is satisfied by both the client and a WATCH transaction.
type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *redisWindowStore) get(ctx context.Context, cmd redisGetter, k string) (*models.VersionedWindow, error) {
	data, err := cmd.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.NewEmptyVersionedWindow(), nil
		}
		return nil, fmt.Errorf("failed to get window: %w", err)
	}
	return decodeWindow(data)
}

func (s *redisWindowStore) redisKey(key models.WindowKey) string {
	return s.keyPrefix + key.String()
}
