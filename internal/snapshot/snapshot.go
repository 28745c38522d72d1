// Package snapshot makes private copies of browser database files that the running browser may
// hold locked, and copies modified snapshots back over the original.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ondrovic/browser-logins/internal/utils/retry"
)

var (
	// ErrCredentialFileMissing means the file to snapshot does not exist. Profiles that never
	// saved a password have no Login Data file.
	ErrCredentialFileMissing = errors.New("credential file missing")
	// ErrSnapshotCopyFailed means the private copy could not be made.
	ErrSnapshotCopyFailed = errors.New("snapshot copy failed")
	// ErrWriteBackFailed means a modified snapshot could not be copied back over the original.
	// The change exists only in the snapshot.
	ErrWriteBackFailed = errors.New("write back failed")
)

// WriteBackError reports an exhausted write-back.
type WriteBackError struct {
	Path     string
	Attempts int
	Err      error
}

func (e *WriteBackError) Error() string {
	return fmt.Sprintf("%v: %s after %d attempts: %v", ErrWriteBackFailed, e.Path, e.Attempts, e.Err)
}

func (e *WriteBackError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrWriteBackFailed) match.
func (e *WriteBackError) Is(target error) bool { return target == ErrWriteBackFailed }

// copyFile is used for both the snapshot copy and the write-back; tests may override it to
// simulate a locked file.
var copyFile = streamCopy

// Snapshot is a private copy of a database file inside its own temporary directory.
type Snapshot struct {
	// Path is the copy; open this, never Source.
	Path   string
	Source string
	dir    string
}

// Open copies src into a fresh temporary directory. The caller must Close the snapshot.
func Open(src string) (*Snapshot, error) {
	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCredentialFileMissing, src)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSnapshotCopyFailed, src, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSnapshotCopyFailed, src)
	}

	dir, err := os.MkdirTemp("", "browser-logins-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp dir: %v", ErrSnapshotCopyFailed, err)
	}

	path := filepath.Join(dir, filepath.Base(src))
	if err := copyFile(src, path); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %s: %v", ErrSnapshotCopyFailed, src, err)
	}

	return &Snapshot{Path: path, Source: src, dir: dir}, nil
}

// With opens a snapshot of src, runs fn, and removes the snapshot however fn returns.
func With(src string, fn func(*Snapshot) error) error {
	s, err := Open(src)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// Dir returns the snapshot's temporary directory.
func (s *Snapshot) Dir() string { return s.dir }

// Commit copies the snapshot over dst, retrying per policy while dst stays locked. onRetry,
// when non-nil, is told about each failed attempt that will be retried.
func (s *Snapshot) Commit(dst string, policy retry.Policy, onRetry func(attempt int, err error)) error {
	err := retry.Do(policy, func() error {
		return copyFile(s.Path, dst)
	}, onRetry)
	if err == nil {
		return nil
	}

	wb := &WriteBackError{Path: dst, Err: err}
	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		wb.Attempts = exhausted.Attempts
		wb.Err = exhausted.Err
	}
	return wb
}

// Close removes the temporary directory. It is safe to call more than once.
func (s *Snapshot) Close() error {
	if s == nil || s.dir == "" {
		return nil
	}
	err := os.RemoveAll(s.dir)
	s.dir = ""
	return err
}

// streamCopy copies src to dst byte for byte, truncating dst.
func streamCopy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	if _, err := io.Copy(bw, in); err != nil {
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
