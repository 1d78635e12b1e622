package redis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Source stores email documents as plain string values under
// KeyPrefix + name, e.g. "mailkit:template.html".
// It satisfies mailer.Source. Every Read hits Redis.
type Source struct {
	client redis.UniversalClient
	prefix string
}

// NewSource creates a document source on top of an open client.
func NewSource(client redis.UniversalClient, prefix string) *Source {
	return &Source{client: client, prefix: prefix}
}

// Read returns the document stored under name.
func (s *Source) Read(ctx context.Context, name string) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return data, nil
}

// Put stores data under name without expiration.
func (s *Source) Put(ctx context.Context, name string, data []byte) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under name.
func (s *Source) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

// Names lists stored document names (without the prefix), sorted.
func (s *Source) Names(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: scan: %w", err)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *Source) key(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "*?[]") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return s.prefix + name, nil
}
