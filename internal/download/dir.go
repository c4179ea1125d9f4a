package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource serves assets from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, name string) (*Asset, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	f, err := os.Open(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return &Asset{Name: name, Size: info.Size(), ModTime: info.ModTime(), Body: f}, nil
}
