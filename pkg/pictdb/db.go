package pictdb

import (
	"fmt"
	"io"
	"os"

	"github.com/panv/pictdb/pkg/fs"
	"github.com/sirupsen/logrus"
)

// Db is a handle to an open pictDB file.
//
// A Db is owned by exactly one caller and is not safe for concurrent use;
// see the package doc for the concurrency model. The zero value is not
// usable; obtain a Db via [Open] or [Create].
type Db struct {
	path   string
	mode   Mode
	fsys   fs.FS
	file   fs.File
	hdr    header
	slots  []slot
	closed bool
	log    *logrus.Entry
	img    imageAdapter
}

// Close flushes and releases the underlying file handle. Close is
// idempotent: calling it more than once, or after a failed Open, is safe.
func (db *Db) Close() error {
	if db == nil || db.closed {
		return nil
	}

	db.closed = true

	if db.file == nil {
		return nil
	}

	err := db.file.Close()
	if err != nil {
		return newErr(KindIO, "close", err)
	}

	return nil
}

// Open opens an existing database file at path.
//
// Possible errors: [ErrInvalidFilename], [ErrIO], [ErrMaxFiles],
// [ErrOutOfMemory].
func Open(path string, mode Mode) (*Db, error) {
	return openWith(fs.NewReal(), path, mode)
}

func openWith(fsys fs.FS, path string, mode Mode) (*Db, error) {
	const op = "open"

	if len(path) == 0 || len(path) > maxDBNameLen {
		return nil, newErr(KindInvalidFilename, op, fmt.Errorf("path length %d out of range [1,%d]", len(path), maxDBNameLen))
	}

	flag := os.O_RDWR
	if mode == ReadOnly {
		flag = os.O_RDONLY
	}

	file, err := fsys.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, newErr(KindIO, op, err)
	}

	db := &Db{path: path, mode: mode, fsys: fsys, file: file, log: dbLogger(path), img: bimgAdapter{}}

	hdrBuf := make([]byte, headerSize)

	_, err = io.ReadFull(file, hdrBuf)
	if err != nil {
		_ = file.Close()

		return nil, newErr(KindIO, op, fmt.Errorf("reading header: %w", err))
	}

	db.hdr = decodeHeader(hdrBuf)

	if db.hdr.maxFiles == 0 || db.hdr.maxFiles > MaxFilesLimit {
		_ = file.Close()

		return nil, newErr(KindMaxFiles, op, fmt.Errorf("max_files=%d out of range", db.hdr.maxFiles))
	}

	db.slots, err = readSlots(file, db.hdr.maxFiles)
	if err != nil {
		_ = file.Close()

		return nil, err
	}

	db.log.WithFields(logrus.Fields{
		"max_files": db.hdr.maxFiles,
		"num_files": db.hdr.numFiles,
		"version":   db.hdr.version,
	}).Debug("opened database")

	return db, nil
}

// readSlots reads maxFiles consecutive slots starting right after the
// header, which must already have been consumed from file's read cursor.
func readSlots(file io.Reader, maxFiles uint32) ([]slot, error) {
	const op = "open"

	buf := make([]byte, int(maxFiles)*slotSize)

	_, err := io.ReadFull(file, buf)
	if err != nil {
		return nil, newErr(KindIO, op, fmt.Errorf("reading slot table: %w", err))
	}

	slots := make([]slot, maxFiles)
	for i := range slots {
		slots[i] = decodeSlot(buf[i*slotSize : (i+1)*slotSize])
	}

	return slots, nil
}

// Create creates a new database file at path with the given configuration
// and opens it for read-write access.
//
// Possible errors: [ErrInvalidFilename], [ErrMaxFiles], [ErrResolutions],
// [ErrIO], [ErrOutOfMemory].
func Create(path string, cfg Config) (*Db, error) {
	return createWith(fs.NewReal(), path, cfg)
}

func createWith(fsys fs.FS, path string, cfg Config) (*Db, error) {
	const op = "create"

	if len(path) == 0 || len(path) > maxDBNameLen {
		return nil, newErr(KindInvalidFilename, op, fmt.Errorf("path length %d out of range [1,%d]", len(path), maxDBNameLen))
	}

	if cfg.MaxFiles == 0 || cfg.MaxFiles > MaxFilesLimit {
		return nil, newErr(KindMaxFiles, op, fmt.Errorf("max_files=%d out of range", cfg.MaxFiles))
	}

	err := validateResolutions(cfg)
	if err != nil {
		return nil, err
	}

	file, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newErr(KindIO, op, err)
	}

	db := &Db{
		path: path,
		mode: ReadWrite,
		fsys: fsys,
		file: file,
		hdr: header{
			dbName:   path,
			version:  0,
			numFiles: 0,
			maxFiles: cfg.MaxFiles,
			resResized: [4]uint16{
				cfg.ThumbRes.Width, cfg.ThumbRes.Height,
				cfg.SmallRes.Width, cfg.SmallRes.Height,
			},
		},
		slots: make([]slot, cfg.MaxFiles),
		log:   dbLogger(path),
		img:   bimgAdapter{},
	}

	err = db.writeHeader()
	if err != nil {
		_ = file.Close()

		return nil, err
	}

	for i := range db.slots {
		err = db.writeSlot(i)
		if err != nil {
			_ = file.Close()

			return nil, err
		}
	}

	db.log.WithFields(logrus.Fields{
		"max_files": cfg.MaxFiles,
		"thumb_res": cfg.ThumbRes,
		"small_res": cfg.SmallRes,
	}).Info("created database")

	return db, nil
}

// validateResolutions checks cfg's resized dimensions against their
// per-kind caps (spec.md §3).
func validateResolutions(cfg Config) error {
	const op = "create"

	checks := []struct {
		name string
		d    Dimensions
		cap  uint16
	}{
		{"thumb", cfg.ThumbRes, ThumbResCap},
		{"small", cfg.SmallRes, SmallResCap},
	}

	for _, c := range checks {
		if c.d.Width < 1 || c.d.Width > c.cap || c.d.Height < 1 || c.d.Height > c.cap {
			return newErr(KindResolutions, op, fmt.Errorf("%s resolution %dx%d out of range [1,%d]", c.name, c.d.Width, c.d.Height, c.cap))
		}
	}

	return nil
}

// writeHeader writes db.hdr at offset 0 (C2 primitive I/O).
func (db *Db) writeHeader() error {
	_, err := db.file.WriteAt(encodeHeader(&db.hdr), 0)
	if err != nil {
		return newErr(KindIO, "writeHeader", err)
	}

	return nil
}

// writeSlot writes db.slots[i] at its fixed offset (C2 primitive I/O).
func (db *Db) writeSlot(i int) error {
	_, err := db.file.WriteAt(encodeSlot(&db.slots[i]), slotOffset(i))
	if err != nil {
		return newErr(KindIO, "writeSlot", err)
	}

	return nil
}

// appendBlob writes bytes at the end of the file and returns the
// pre-write end position (C2 primitive I/O).
func (db *Db) appendBlob(bytes []byte) (uint64, error) {
	info, err := db.file.Stat()
	if err != nil {
		return 0, newErr(KindIO, "appendBlob", err)
	}

	offset := info.Size()

	_, err = db.file.WriteAt(bytes, offset)
	if err != nil {
		return 0, newErr(KindIO, "appendBlob", err)
	}

	return uint64(offset), nil
}

// readBlob reads exactly size bytes starting at offset (C2 primitive I/O).
func (db *Db) readBlob(offset uint64, size uint32) ([]byte, error) {
	buf := make([]byte, size)

	_, err := db.file.ReadAt(buf, int64(offset))
	if err != nil {
		return nil, newErr(KindIO, "readBlob", err)
	}

	return buf, nil
}

func (db *Db) requireWritable(op string) error {
	if db.mode == ReadOnly {
		return newErr(KindInvalidArgument, op, fmt.Errorf("database opened read-only"))
	}

	return nil
}
