package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriteError reports a report or export file that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// File is one rendered output and its destination.
type File struct {
	Path string
	Data []byte
}

// SaveFile writes rendered output to path the same way the Write* helpers
// do. Failures are *OutputWriteError.
func SaveFile(path string, data []byte) error {
	return writeFileAtomic(path, data)
}

// SaveFiles writes every file or none of them. All contents are staged in
// temporary files first; the renames happen only once every stage succeeded,
// and files already renamed are removed again if a later rename fails.
func SaveFiles(files ...File) error {
	staged := make([]string, 0, len(files))
	discard := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, f := range files {
		tmp, err := stage(f.Path, f.Data)
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, tmp)
	}
	for i, f := range files {
		if err := os.Rename(staged[i], f.Path); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.Path)
			}
			discard()
			return &OutputWriteError{Path: f.Path, Err: err}
		}
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so a failed write never leaves a truncated output behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := stage(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}

// stage writes data to a closed temporary file in path's directory and
// returns its name.
func stage(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", &OutputWriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmpName)
		return "", &OutputWriteError{Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &OutputWriteError{Path: path, Err: err}
	}
	return tmpName, nil
}
