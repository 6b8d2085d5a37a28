// Package filestore implements the device key-value store on the local
// filesystem. Each key maps to one file; writes go through a temp file,
// fsync and rename, so a Set that returned is durable and immediately
// readable. That property is what lets login commit the user id and run
// dependent cache validation right away, with no settling delay.
package filestore

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"primeform/internal/domain/repository"

	"github.com/pkg/errors"
)

type fileStore struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (repository.KeyValueStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}

	return &fileStore{dir: dir}, nil
}

// encodeKey makes an arbitrary key filesystem-safe while keeping it
// reversible for Keys listing.
func encodeKey(key string) string {
	return hex.EncodeToString([]byte(key))
}

func decodeKey(name string) (string, error) {
	raw, err := hex.DecodeString(name)
	if err != nil {
		return "", errors.Wrap(err, "decode key")
	}

	return string(raw), nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, encodeKey(key)+".kv")
}

func (s *fileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.WithStack(repository.ErrKeyNotFound)
		}

		return "", errors.Wrap(err, "read value")
	}

	return string(data), nil
}

func (s *fileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(s.dir, "write-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "write value")
	}

	// Durability before visibility: fsync, then rename into place.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "sync value")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "commit value")
	}

	return nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete value")
	}

	return nil
}

func (s *fileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "list store directory")
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".kv") {
			continue
		}

		key, err := decodeKey(strings.TrimSuffix(name, ".kv"))
		if err != nil {
			// Foreign file in the store directory; skip it.
			continue
		}

		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}
