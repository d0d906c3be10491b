package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/reconcile/internal/errors"
)

// DiskStore writes snapshots into a directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E182").Wrap(err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put writes name.html through a temp file so readers never see a partial
// snapshot.
func (s *DiskStore) Put(ctx context.Context, name string, html []byte) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, fileName(name))
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return "", errors.New("E182").Wrap(err)
	}
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.New("E182").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.New("E182").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.New("E182").Wrap(err)
	}
	return path, nil
}

// Dir returns the target directory.
func (s *DiskStore) Dir() string {
	return s.dir
}
