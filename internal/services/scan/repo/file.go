// Package repo provides the scan state stores: JSON files for the
// default single-machine setup, redis and postgres for shared state,
// clickhouse for the verdict history
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

const (
	checkedFile = "checked.json"
	foundFile   = "found.json"
	statusFile  = "status.json"
)

// File persists run state as JSON documents under one directory.
// Every save rewrites the whole document through a temp file rename,
// so a crash mid-write never corrupts the previous state
type File struct {
	dir string
}

// NewFile prepares the state directory
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, perr.InvalidArgf("state dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "create state dir %q", dir)
	}
	return &File{dir: dir}, nil
}

// LoadChecked reads the checked set; a missing file is an empty set
func (f *File) LoadChecked(context.Context) ([]string, error) {
	var out []string
	if err := f.read(checkedFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFound reads the found registry; a missing file is an empty registry
func (f *File) LoadFound(context.Context) ([]domain.Finding, error) {
	var out []domain.Finding
	if err := f.read(foundFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadStatus reads the last run status; a missing file is a zero status
func (f *File) LoadStatus(context.Context) (domain.RunStatus, error) {
	var st domain.RunStatus
	if err := f.read(statusFile, &st); err != nil {
		return domain.RunStatus{}, err
	}
	return st, nil
}

// SaveChecked rewrites the full snapshot; the incremental added list is
// for stores that persist member by member
func (f *File) SaveChecked(_ context.Context, snapshot, _ []string) error {
	return f.write(checkedFile, snapshot, 0o644)
}

// SaveFound rewrites the findings document
func (f *File) SaveFound(_ context.Context, findings []domain.Finding) error {
	return f.write(foundFile, findings, 0o600)
}

// SaveStatus rewrites the status document
func (f *File) SaveStatus(_ context.Context, st domain.RunStatus) error {
	return f.write(statusFile, st, 0o644)
}

func (f *File) read(name string, into any) error {
	b, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "read %s", name)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, into); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", name)
	}
	return nil
}

func (f *File) write(name string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s", name)
	}
	b = append(b, '\n')

	dst := filepath.Join(f.dir, name)
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "stage %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeDB, "stage %s", name)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeDB, "stage %s", name)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "stage %s", name)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "publish %s", name)
	}
	return nil
}
