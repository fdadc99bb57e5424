// Package fs provides a filesystem abstraction so pictdb.Db can be driven
// against an in-memory or fault-injecting implementation in tests without
// touching the real filesystem.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] package
//
// Example usage:
//
//	fsys := fs.NewReal()
//	f, err := fsys.OpenFile("db.pictdb", os.O_RDWR, 0)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
package fs

import (
	"io"
	"os"
)

// File represents an OS-backed open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader], [io.Writer],
// [io.Seeker], or [io.Closer].
type File interface {
	// Embedded interfaces from [io] package.
	// These provide Read, Write, Close, and Seek methods.
	io.ReadWriteCloser
	io.Seeker
	io.ReaderAt
	io.WriterAt

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)

	// Sync commits the file's contents to disk. See [os.File.Sync].
	Sync() error
}

// FS defines the filesystem operations a [Db] needs: opening the single
// database file, and the create/rename/remove dance used by garbage
// collection to swap a rebuilt file into place.
//
// Paths use OS semantics (like the os package and path/filepath), not the
// slash-separated paths used by the standard library io/fs package.
type FS interface {
	// OpenFile opens a file with specified flags and permissions. See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// Stat returns file info. See [os.Stat].
	// Returns an error satisfying [os.IsNotExist] if file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// Remove deletes a file. See [os.Remove].
	Remove(path string) error

	// Rename moves/renames a file. See [os.Rename]. Atomic on the same
	// filesystem.
	Rename(oldpath, newpath string) error

	// ReplaceFile atomically overwrites newpath with the contents of
	// oldpath, removing oldpath. Used by garbage collection to swap a
	// rebuilt database into place without ever exposing a partially
	// written file at newpath.
	ReplaceFile(oldpath, newpath string) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
