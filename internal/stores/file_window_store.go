package stores

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/filestorages"
	"dynamic-routing/internal/shared/partitions"
)

const fileLockStripes = 64

// fileWindowStore persists each window as a JSON file on top of FileStorage, whose
// overwrite is an atomic rename, so readers never see a half-written window.
//
// The version check and the rename happen under a striped in-process lock, which makes
// this backend safe for a single service instance only.
//
// Example layout:
//   - windows/3f5a...c1.json (sha256 of the window key, hex encoded)
type fileWindowStore struct {
	fileStorage filestorages.FileStorage
	dir         string
	locks       [fileLockStripes]sync.Mutex
}

func NewFileWindowStore(fileStorage filestorages.FileStorage) WindowStore {
	return &fileWindowStore{fileStorage: fileStorage, dir: "windows"}
}

func (s *fileWindowStore) Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.get(ctx, s.fileKey(key))
}

func (s *fileWindowStore) Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error {
	payload, err := encodeWindow(expectedVersion+1, window)
	if err != nil {
		return err
	}
	k := s.fileKey(key)
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := &s.locks[partitions.Index(k, fileLockStripes)]
	lock.Lock()
	defer lock.Unlock()

	current, err := s.get(ctx, k)
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return ErrVersionConflict
	}
	// first write is create-if-absent so a second process racing on the same root loses cleanly
	opts := filestorages.PutOptions{AllowOverwrite: expectedVersion != 0}
	if _, err := s.fileStorage.Put(ctx, k, bytes.NewReader(payload), opts); err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to put window: %w", err)
	}
	return nil
}

func (s *fileWindowStore) get(ctx context.Context, k string) (*models.VersionedWindow, error) {
	readCloser, err := s.fileStorage.Get(ctx, k)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return models.NewEmptyVersionedWindow(), nil
		}
		return nil, fmt.Errorf("failed to get window: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read window: %w", err)
	}
	return decodeWindow(data)
}

func (s *fileWindowStore) fileKey(key models.WindowKey) string {
	sum := sha256.Sum256([]byte(key.String()))
	return fmt.Sprintf("%s/%s.json", s.dir, hex.EncodeToString(sum[:]))
}
