package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
)

// DirSource serves assets from a file system, usually a local directory.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource serves the files under dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{fsys: os.DirFS(dir)}
}

// NewFSSource serves the files of fsys.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Open implements Source.
func (d *DirSource) Open(_ context.Context, name string) (*Object, error) {
	clean, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := d.fsys.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return nil, fmt.Errorf("open asset %s: %w", clean, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat asset %s: %w", clean, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, clean)
	}

	return &Object{
		Body:        f,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: mime.TypeByExtension(path.Ext(clean)),
	}, nil
}
