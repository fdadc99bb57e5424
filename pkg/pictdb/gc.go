package pictdb

import (
	"fmt"
	"time"
)

// GC rebuilds db into tempPath, dropping the holes left by deletions, and
// atomically swaps the rebuilt file into db's own path (spec.md §4.8).
//
// On success db is left open against the rebuilt file at its original
// path; numFiles is unchanged but slots are compacted to indices
// [0, numFiles). If rebuilding fails, tempPath is removed and db is left
// fully usable at its original content. A failure while closing db's own
// file handle or swapping it into place can leave db unusable even
// though its on-disk content is untouched; callers should treat any
// error from GC past the rebuild step as grounds to re-[Open] db.
//
// Possible errors: [ErrInvalidArgument], [ErrIO], [ErrImage],
// [ErrMaxFiles], [ErrResolutions].
func (db *Db) GC(tempPath string) error {
	const op = "gc"

	start := time.Now()
	logger := db.log

	err := db.gc(tempPath)

	fields := logger.WithFields(map[string]interface{}{
		"op":        op,
		"temp_path": tempPath,
		"duration":  time.Since(start),
	})

	if err != nil {
		fields.WithError(err).Warn("gc failed")

		return err
	}

	fields.Info("garbage collection complete")

	return nil
}

func (db *Db) gc(tempPath string) error {
	const op = "gc"

	err := db.requireWritable(op)
	if err != nil {
		return err
	}

	if len(tempPath) == 0 {
		return newErr(KindInvalidArgument, op, fmt.Errorf("empty temp path"))
	}

	cfg := Config{
		MaxFiles: db.hdr.maxFiles,
		ThumbRes: Dimensions{Width: db.hdr.resResized[0], Height: db.hdr.resResized[1]},
		SmallRes: Dimensions{Width: db.hdr.resResized[2], Height: db.hdr.resResized[3]},
	}

	temp, err := createWith(db.fsys, tempPath, cfg)
	if err != nil {
		return err
	}

	temp.img = db.img

	rebuildErr := db.rebuildInto(temp)
	if rebuildErr != nil {
		_ = temp.Close()
		_ = db.fsys.Remove(tempPath)

		return rebuildErr
	}

	temp.hdr.version = db.hdr.version
	temp.hdr.dbName = db.hdr.dbName

	err = temp.writeHeader()
	if err != nil {
		_ = temp.Close()
		_ = db.fsys.Remove(tempPath)

		return err
	}

	err = temp.Close()
	if err != nil {
		_ = db.fsys.Remove(tempPath)

		return err
	}

	err = db.file.Close()
	if err != nil {
		_ = db.fsys.Remove(tempPath)

		return newErr(KindIO, op, err)
	}

	err = db.fsys.ReplaceFile(tempPath, db.path)
	if err != nil {
		return newErr(KindIO, op, fmt.Errorf("swapping rebuilt database into place: %w", err))
	}

	reopened, err := openWith(db.fsys, db.path, db.mode)
	if err != nil {
		return err
	}

	reopened.img = temp.img

	*db = *reopened

	return nil
}

// rebuildInto copies every valid slot of db into temp, in table order,
// re-materializing each resolution that was present in the source slot
// (spec.md §4.8 step 2: recompute rather than copy, to keep the sharing
// invariant trivially true in the freshly built file).
func (db *Db) rebuildInto(temp *Db) error {
	for i := range db.slots {
		s := &db.slots[i]
		if !s.valid() {
			continue
		}

		orig, err := db.readBlob(s.offset[Original], s.size[Original])
		if err != nil {
			return err
		}

		err = temp.insert(s.picID, orig)
		if err != nil {
			return err
		}

		j, ok := temp.findByID(s.picID)
		if !ok {
			return newErr(KindIO, "gc", fmt.Errorf("picture %q missing from rebuilt database", s.picID))
		}

		for _, r := range []Resolution{Thumb, Small} {
			if s.size[r] == 0 {
				continue
			}

			err = temp.lazyResize(j, r)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
