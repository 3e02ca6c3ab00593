package io

import (
	"errors"
	"io/fs"
	"os"
)

// Loader is the file-reading collaborator. Given a path, it returns the
// raw bytes of the file, or an error matching ErrFileNotFound or
// ErrFileUnreadable.
type Loader interface {
	Load(path string) (data []byte, err error)
}

// OsLoader loads files from the host file system.
type OsLoader struct{}

var _ Loader = OsLoader{}

// Load reads the named host file.
func (OsLoader) Load(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = loadError(path, err)
	}
	return
}

// FSLoader loads files from an fs.FS, such as a directory or an embedded
// file system.
type FSLoader struct {
	FS fs.FS
}

var _ Loader = (*FSLoader)(nil)

// Load reads the named file from the file system.
func (fl *FSLoader) Load(path string) (data []byte, err error) {
	if fl.FS == nil || !fs.ValidPath(path) {
		err = &ErrFile{Path: path, Err: ErrFileNotFound}
		return
	}

	data, err = fs.ReadFile(fl.FS, path)
	if err != nil {
		err = loadError(path, err)
	}
	return
}

// loadError maps a file system error onto the loader error taxonomy.
func loadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &ErrFile{Path: path, Err: errors.Join(ErrFileNotFound, err)}
	}

	return &ErrFile{Path: path, Err: errors.Join(ErrFileUnreadable, err)}
}
