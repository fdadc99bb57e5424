package fs

import (
	"os"

	"github.com/natefinch/atomic"
)

// Real implements [FS] using the real filesystem.
//
// All methods except ReplaceFile are pure passthroughs to the [os] package
// with identical behavior and error semantics; ReplaceFile delegates to
// github.com/natefinch/atomic.
type Real struct{}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.OpenFile].
func (r *Real) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(path, flag, perm)
}

// A passthrough wrapper for [os.Stat].
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// A passthrough wrapper for [os.Remove].
func (r *Real) Remove(path string) error {
	return os.Remove(path)
}

// A passthrough wrapper for [os.Rename].
func (r *Real) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// ReplaceFile atomically replaces newpath with oldpath via
// atomic.ReplaceFile, which moves oldpath over newpath in a single rename,
// so a reader never observes a partially written newpath.
func (r *Real) ReplaceFile(oldpath, newpath string) error {
	return atomic.ReplaceFile(oldpath, newpath)
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
