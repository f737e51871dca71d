package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// ArtifactStore persists trained model artifacts by name.
type ArtifactStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// FileStore keeps artifacts as files under one directory.
type FileStore struct {
	dir string
}

var _ ArtifactStore = &FileStore{}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(f.dir, os.ModePerm); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	path := f.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace artifact %s: %w", name, err)
	}
	return nil
}

func (f *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

// RedisStore keeps artifacts in Redis, so several service instances can
// share one trained model.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ ArtifactStore = &RedisStore{}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		prefix: "pitwall:model:",
	}
}

func (r *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("store artifact %s: %w", name, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+name).Bytes()
	if err != nil {
		return nil, fmt.Errorf("fetch artifact %s: %w", name, err)
	}
	return data, nil
}
