package pictdb

// findByID performs a linear scan over valid slots for an exact match on
// pictID, returning its index or (-1, false). O(max_files), per spec.md §4.3.
func (db *Db) findByID(picID string) (int, bool) {
	for i := range db.slots {
		if db.slots[i].valid() && db.slots[i].picID == picID {
			return i, true
		}
	}

	return -1, false
}

// firstEmpty returns the index of the first EMPTY slot, or (-1, false) if
// the table is full.
func (db *Db) firstEmpty() (int, bool) {
	for i := range db.slots {
		if !db.slots[i].valid() {
			return i, true
		}
	}

	return -1, false
}
