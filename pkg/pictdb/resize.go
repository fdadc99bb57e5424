package pictdb

import "fmt"

// lazyResize materializes resolution res for the picture in slots[i],
// computing it from the original bytes the first time it is requested
// (spec.md §4.7). Every other valid slot that shares the same original
// content (by SHA) is updated to point at the same resized bytes, so the
// resize work happens at most once per distinct image.
func (db *Db) lazyResize(i int, res Resolution) error {
	const op = "read"

	if res == Original {
		return nil
	}

	target := &db.slots[i]
	if target.size[res] != 0 {
		return nil
	}

	maxW, maxH := db.hdr.resResized[res*2], db.hdr.resResized[res*2+1]
	if maxW == 0 || maxH == 0 {
		return newErr(KindResolutions, op, fmt.Errorf("resolution %s not configured for this database", res))
	}

	orig, err := db.readBlob(target.offset[Original], target.size[Original])
	if err != nil {
		return err
	}

	resized, err := db.img.resizeToFit(orig, maxW, maxH)
	if err != nil {
		return err
	}

	offset, err := db.appendBlob(resized)
	if err != nil {
		return err
	}

	size := uint32(len(resized))
	sha := target.sha

	for j := range db.slots {
		s := &db.slots[j]
		if !s.valid() || s.sha != sha {
			continue
		}

		s.offset[res] = offset
		s.size[res] = size

		err = db.writeSlot(j)
		if err != nil {
			return err
		}
	}

	db.hdr.version++

	return db.writeHeader()
}
