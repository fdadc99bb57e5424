package pictdb

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// validatePicID enforces the 1..127 byte length bound from spec.md §3/§8.
func validatePicID(op, id string) error {
	if len(id) < 1 || len(id) > maxPicIDLen {
		return newErr(KindInvalidPicId, op, fmt.Errorf("id length %d out of range [1,%d]", len(id), maxPicIDLen))
	}

	return nil
}

// List renders the valid slots of db according to mode (spec.md §4.6).
//
// ListStdout returns a human-readable dump including the header and one
// line per NON_EMPTY slot, or "<< empty database >>" when none exist.
// ListJSON returns {"Pictures": [id, ...]}.
func (db *Db) List(mode ListMode) (string, error) {
	ids := db.validIDs()

	if mode == ListJSON {
		doc := pictureListDoc{Pictures: ids}

		out, err := json.Marshal(doc)
		if err != nil {
			return "", newErr(KindIO, "list", err)
		}

		return string(out), nil
	}

	var b strings.Builder

	fmt.Fprintf(&b, "*****pictDB header*****\n")
	fmt.Fprintf(&b, "DB NAME: %s\n", db.hdr.dbName)
	fmt.Fprintf(&b, "VERSION: %d\n", db.hdr.version)
	fmt.Fprintf(&b, "IMAGE COUNT: %d\tMAX IMAGES: %d\n", db.hdr.numFiles, db.hdr.maxFiles)
	fmt.Fprintf(&b, "THUMBNAIL: %d x %d\tSMALL: %d x %d\n",
		db.hdr.resResized[0], db.hdr.resResized[1], db.hdr.resResized[2], db.hdr.resResized[3])
	fmt.Fprintf(&b, "*****************************************\n")

	if len(ids) == 0 {
		fmt.Fprintf(&b, "<< empty database >>\n")

		return b.String(), nil
	}

	for i := range db.slots {
		s := &db.slots[i]
		if !s.valid() {
			continue
		}

		fmt.Fprintf(&b, "PICTURE ID: %s\n", s.picID)
		fmt.Fprintf(&b, "SHA: %x\n", s.sha)
		fmt.Fprintf(&b, "ORIGINAL RESOLUTION: %d x %d\n", s.origWidth, s.origHeight)
	}

	return b.String(), nil
}

// validIDs returns the pict_id of each NON_EMPTY slot in table order.
func (db *Db) validIDs() []string {
	ids := make([]string, 0, db.hdr.numFiles)

	for i := range db.slots {
		if db.slots[i].valid() {
			ids = append(ids, db.slots[i].picID)
		}
	}

	return ids
}

// Insert adds a new picture under id with the given original JPEG bytes
// (spec.md §4.6).
//
// Possible errors: [ErrInvalidPicId], [ErrInvalidArgument],
// [ErrFullDatabase], [ErrDuplicateId], [ErrIO], [ErrImage].
func (db *Db) Insert(id string, bytes []byte) error {
	const op = "insert"

	start := time.Now()

	err := db.insert(id, bytes)

	fields := db.log.WithFields(map[string]interface{}{
		"op":       op,
		"id":       id,
		"bytes":    len(bytes),
		"duration": time.Since(start),
	})

	if err != nil {
		fields.WithError(err).Warn("insert failed")

		return err
	}

	fields.Info("inserted picture")

	return nil
}

func (db *Db) insert(id string, bytes []byte) error {
	const op = "insert"

	err := db.requireWritable(op)
	if err != nil {
		return err
	}

	err = validatePicID(op, id)
	if err != nil {
		return err
	}

	if len(bytes) == 0 {
		return newErr(KindInvalidArgument, op, fmt.Errorf("empty image bytes"))
	}

	if db.hdr.numFiles == db.hdr.maxFiles {
		return newErr(KindFullDatabase, op, fmt.Errorf("all %d slots occupied", db.hdr.maxFiles))
	}

	i, ok := db.firstEmpty()
	if !ok {
		return newErr(KindFullDatabase, op, fmt.Errorf("no empty slot despite num_files < max_files"))
	}

	s := &db.slots[i]
	*s = slot{
		picID:   id,
		sha:     sha256.Sum256(bytes),
		isValid: slotNonEmpty,
	}
	s.size[Original] = uint32(len(bytes))

	err = db.dedup(i)
	if err != nil {
		*s = slot{} // rollback to EMPTY, per spec.md §4.4/§7

		return err
	}

	if s.offset[Original] == 0 {
		offset, appendErr := db.appendBlob(bytes)
		if appendErr != nil {
			return appendErr
		}

		s.offset[Original] = offset
	}

	w, h, err := db.img.dimensions(bytes)
	if err != nil {
		return err
	}

	s.origWidth, s.origHeight = w, h

	db.hdr.version++
	db.hdr.numFiles++

	err = db.writeSlot(i)
	if err != nil {
		return err
	}

	return db.writeHeader()
}

// Read returns the bytes stored for id at the given resolution,
// materializing a non-original resolution on first access (spec.md §4.6,
// §4.7).
//
// Possible errors: [ErrInvalidPicId], [ErrFileNotFound], [ErrResolutions],
// [ErrIO], [ErrImage].
func (db *Db) Read(id string, res Resolution) ([]byte, error) {
	const op = "read"

	start := time.Now()

	out, err := db.read(id, res)

	fields := db.log.WithFields(map[string]interface{}{
		"op":         op,
		"id":         id,
		"resolution": res,
		"duration":   time.Since(start),
	})

	if err != nil {
		fields.WithError(err).Warn("read failed")

		return nil, err
	}

	fields.WithField("bytes", len(out)).Debug("read picture")

	return out, nil
}

func (db *Db) read(id string, res Resolution) ([]byte, error) {
	const op = "read"

	err := validatePicID(op, id)
	if err != nil {
		return nil, err
	}

	i, ok := db.findByID(id)
	if !ok {
		return nil, newErr(KindFileNotFound, op, fmt.Errorf("no picture with id %q", id))
	}

	if res != Thumb && res != Small && res != Original {
		return nil, newErr(KindResolutions, op, fmt.Errorf("unknown resolution %d", res))
	}

	if res != Original && db.slots[i].size[res] == 0 {
		err = db.lazyResize(i, res)
		if err != nil {
			return nil, err
		}
	}

	return db.readBlob(db.slots[i].offset[res], db.slots[i].size[res])
}

// Delete removes id from the table (spec.md §4.6). Blobs are left in
// place; only garbage collection reclaims their space.
//
// Possible errors: [ErrInvalidPicId], [ErrFileNotFound], [ErrIO].
func (db *Db) Delete(id string) error {
	const op = "delete"

	start := time.Now()

	err := db.delete(id)

	fields := db.log.WithFields(map[string]interface{}{
		"op":       op,
		"id":       id,
		"duration": time.Since(start),
	})

	if err != nil {
		fields.WithError(err).Warn("delete failed")

		return err
	}

	fields.Info("deleted picture")

	return nil
}

func (db *Db) delete(id string) error {
	const op = "delete"

	err := db.requireWritable(op)
	if err != nil {
		return err
	}

	err = validatePicID(op, id)
	if err != nil {
		return err
	}

	i, ok := db.findByID(id)
	if !ok {
		return newErr(KindFileNotFound, op, fmt.Errorf("no picture with id %q", id))
	}

	db.slots[i].isValid = slotEmpty

	err = db.writeSlot(i)
	if err != nil {
		return err
	}

	db.hdr.version++
	db.hdr.numFiles--

	return db.writeHeader()
}
