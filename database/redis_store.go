package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/behalnihal/rag-chatbot-backend/config"
	"github.com/behalnihal/rag-chatbot-backend/types"
)

// RedisStore keeps each session transcript as a Redis list under a key
// derived from the session id. Lists are append-only; clearing a session
// deletes the whole list. No expiry is set here, retention is left to the
// Redis deployment.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := cfg.SessionPrefix
	if prefix == "" {
		prefix = "chat_history:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return s.prefix + sessionID
}

// Append pushes messages to the tail of the session's list, creating the
// list on first use. Passing the user and bot message together keeps a turn
// contiguous in the transcript.
func (s *RedisStore) Append(ctx context.Context, sessionID string, messages ...types.Message) error {
	if len(messages) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("%w: marshal message: %v", types.ErrPersistence, err)
		}
		values = append(values, raw)
	}
	if err := s.client.RPush(ctx, s.sessionKey(sessionID), values...).Err(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrPersistence, err)
	}
	return nil
}

// ReadAll returns the transcript oldest first. A session that never existed
// or was cleared yields an empty slice.
func (s *RedisStore) ReadAll(ctx context.Context, sessionID string) ([]types.Message, error) {
	raw, err := s.client.LRange(ctx, s.sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrPersistence, err)
	}
	messages := make([]types.Message, 0, len(raw))
	for _, item := range raw {
		var msg types.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("%w: unmarshal message: %v", types.ErrPersistence, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Clear deletes the session's list. Clearing a nonexistent session is a
// no-op, not an error.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrPersistence, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
