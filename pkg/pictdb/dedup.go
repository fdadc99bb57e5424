package pictdb

import "fmt"

// dedup implements C4 (spec.md §4.4). It is called immediately after slot
// i has been populated with id, sha, orig size, and isValid=NON_EMPTY, but
// before any blob has been written.
//
// On success, slots[i].offset[Original] is either:
//   - non-zero, meaning a prior slot with identical content already owns
//     the blob and the caller must NOT append new bytes, or
//   - zero, meaning no content match was found and the caller must append
//     the original bytes and record the resulting offset itself.
//
// Returns ErrDuplicateId if another valid slot already uses the same id;
// the caller is responsible for rolling slots[i] back to EMPTY in that case.
func (db *Db) dedup(i int) error {
	const op = "insert"

	target := &db.slots[i]
	if !target.valid() {
		return newErr(KindInvalidArgument, op, fmt.Errorf("slot %d is empty", i))
	}

	matchFound := false

	for j := range db.slots {
		if j == i || !db.slots[j].valid() {
			continue
		}

		if db.slots[j].picID == target.picID {
			return newErr(KindDuplicateId, op, fmt.Errorf("id %q already exists", target.picID))
		}

		if !matchFound && db.slots[j].sha == target.sha {
			matchFound = true

			for r := 0; r < numResolutions; r++ {
				target.offset[r] = db.slots[j].offset[r]
				target.size[r] = db.slots[j].size[r]
			}
		}
	}

	if !matchFound {
		target.offset[Original] = 0
		target.size[Thumb], target.offset[Thumb] = 0, 0
		target.size[Small], target.offset[Small] = 0, 0
	}

	return nil
}
