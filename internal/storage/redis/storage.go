package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each record is a JSON string key; a sorted set indexes registration order.
// Register and ClearAll run as Lua scripts so the record keys and the index
// always change together.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// registerScript claims the record key and indexes it in one step.
// KEYS: record, sequence, index. ARGV: record JSON, player id.
var registerScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
	return 0
end
local seq = redis.call('INCR', KEYS[2])
redis.call('ZADD', KEYS[3], seq, ARGV[2])
return 1
`)

// clearScript deletes every record key matching ARGV[1] and the index
// KEYS[1]. Keys are found by SCAN so records missing from the index are
// removed too.
var clearScript = redis.NewScript(`
local cursor = '0'
repeat
	local page = redis.call('SCAN', cursor, 'MATCH', ARGV[1], 'COUNT', 1000)
	cursor = page[1]
	for _, key in ipairs(page[2]) do
		redis.call('DEL', key)
	end
until cursor == '0'
redis.call('DEL', KEYS[1])
return 1
`)

// Register writes the record only if the id is free; a duplicate never
// overwrites existing progress.
func (s *Storage) Register(ctx context.Context, progress *model.PlayerProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	keys := []string{
		completionKey(s.cfg.KeyPrefix, progress.ID),
		sequenceKey(s.cfg.KeyPrefix),
		completionsIndexKey(s.cfg.KeyPrefix),
	}
	created, err := registerScript.Run(ctx, s.client, keys, data, string(progress.ID)).Int()
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if created == 0 {
		return model.ErrDuplicateRegistration
	}
	return nil
}

func (s *Storage) GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error) {
	data, err := s.client.Get(ctx, completionKey(s.cfg.KeyPrefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}

	var progress model.PlayerProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Storage) GetAny(ctx context.Context) (*model.PlayerProgress, error) {
	ids, err := s.client.ZRange(ctx, completionsIndexKey(s.cfg.KeyPrefix), 0, 0).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrProgressNotFound
	}
	return s.GetProgress(ctx, model.PlayerID(ids[0]))
}

// ReplaceProgress uses SET XX, which only writes when the key already exists
func (s *Storage) ReplaceProgress(ctx context.Context, progress *model.PlayerProgress) (int64, error) {
	data, err := json.Marshal(progress)
	if err != nil {
		return 0, err
	}

	updated, err := s.client.SetXX(ctx, completionKey(s.cfg.KeyPrefix, progress.ID), data, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("replace progress: %w", err)
	}
	if !updated {
		return 0, nil
	}
	return 1, nil
}

func (s *Storage) ClearAll(ctx context.Context) error {
	keys := []string{completionsIndexKey(s.cfg.KeyPrefix)}
	if err := clearScript.Run(ctx, s.client, keys, completionKeyPattern(s.cfg.KeyPrefix)).Err(); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	return nil
}

func (s *Storage) Count(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, completionsIndexKey(s.cfg.KeyPrefix)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
