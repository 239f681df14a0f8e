// Package redisblob persists the comment collection as a single JSON array
// held under one fixed redis key, mirroring a browser key-value store:
// every write replaces the whole value.
package redisblob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pinnote/pinnote/internal/domain"
)

// Key is the fixed key naming the comment collection.
const Key = "pinnote:comments"

// Persister implements store.Persister on top of a redis client.
type Persister struct {
	client *redis.Client
}

// New creates a redis-backed persister.
func New(client *redis.Client) *Persister {
	return &Persister{client: client}
}

// Load reads and decodes the collection. A missing key or malformed value
// yields an empty collection, never an error: corrupt persisted state is
// discarded rather than surfaced.
func (p *Persister) Load(ctx context.Context) ([]domain.Comment, error) {
	data, err := p.client.Get(ctx, Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Comment{}, nil
		}
		return nil, fmt.Errorf("failed to read comment collection: %w", err)
	}
	return Decode(data), nil
}

// Save overwrites the persisted collection with the given snapshot.
func (p *Persister) Save(ctx context.Context, comments []domain.Comment) error {
	data, err := Encode(comments)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write comment collection: %w", err)
	}
	return nil
}

// Encode serializes the collection as one JSON array.
func Encode(comments []domain.Comment) ([]byte, error) {
	if comments == nil {
		comments = []domain.Comment{}
	}
	data, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comment collection: %w", err)
	}
	return data, nil
}

// Decode parses a persisted value. Malformed input is treated as an empty
// collection.
func Decode(data []byte) []domain.Comment {
	var comments []domain.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return []domain.Comment{}
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments
}
