package pictdb

import (
	"encoding/binary"
)

// On-disk format constants.
//
// The file is laid out as: [header][slot 0]...[slot max_files-1][blobs...].
// All multi-byte integers are little-endian; see encodeHeader/encodeSlot
// for the exact byte layout. pictMagic and pictVersion are not written to
// the file: the header has no magic or format-version field.
const (
	pictMagic   = "PICT"
	pictVersion = 1

	// maxDBNameLen is the usable length of db_name (spec.md: length <= 31),
	// stored null-terminated in a 32-byte field.
	maxDBNameLen = 31
	dbNameField  = maxDBNameLen + 1

	// maxPicIDLen is the usable length of pict_id (spec.md: 1..127),
	// stored null-terminated in a 128-byte field.
	maxPicIDLen = 127
	picIDField  = maxPicIDLen + 1

	// shaSize is the width of a SHA-256 digest.
	shaSize = 32

	// MaxFilesLimit is the table-capacity ceiling from spec.md §3.
	MaxFilesLimit = 100_000

	// ThumbResCap and SmallResCap bound the per-kind resized dimensions.
	ThumbResCap = 128
	SmallResCap = 512
)

// headerSize is the fixed byte length of the encoded header.
//
//	db_name      [32]byte
//	version      uint32
//	num_files    uint32
//	max_files    uint32
//	res_resized  [4]uint16
//	reserved32   uint32
//	reserved64   uint64
const headerSize = dbNameField + 4 + 4 + 4 + 4*2 + 4 + 8

// Header field offsets within the encoded header buffer.
const (
	hOffDBName     = 0
	hOffVersion    = hOffDBName + dbNameField
	hOffNumFiles   = hOffVersion + 4
	hOffMaxFiles   = hOffNumFiles + 4
	hOffResResized = hOffMaxFiles + 4
	hOffReserved32 = hOffResResized + 4*2
	hOffReserved64 = hOffReserved32 + 4
)

// header is the in-memory mirror of the file header (spec.md §3).
type header struct {
	dbName      string
	version     uint32
	numFiles    uint32
	maxFiles    uint32
	resResized  [4]uint16 // thumbW, thumbH, smallW, smallH
	reserved32  uint32
	reserved64  uint64
}

// encodeHeader serializes h into a headerSize-byte buffer.
func encodeHeader(h *header) []byte {
	buf := make([]byte, headerSize)

	putFixedString(buf[hOffDBName:hOffDBName+dbNameField], h.dbName)
	binary.LittleEndian.PutUint32(buf[hOffVersion:], h.version)
	binary.LittleEndian.PutUint32(buf[hOffNumFiles:], h.numFiles)
	binary.LittleEndian.PutUint32(buf[hOffMaxFiles:], h.maxFiles)

	for i, v := range h.resResized {
		binary.LittleEndian.PutUint16(buf[hOffResResized+i*2:], v)
	}

	binary.LittleEndian.PutUint32(buf[hOffReserved32:], h.reserved32)
	binary.LittleEndian.PutUint64(buf[hOffReserved64:], h.reserved64)

	return buf
}

// decodeHeader deserializes a headerSize-byte buffer into a header.
func decodeHeader(buf []byte) header {
	var h header

	h.dbName = getFixedString(buf[hOffDBName : hOffDBName+dbNameField])
	h.version = binary.LittleEndian.Uint32(buf[hOffVersion:])
	h.numFiles = binary.LittleEndian.Uint32(buf[hOffNumFiles:])
	h.maxFiles = binary.LittleEndian.Uint32(buf[hOffMaxFiles:])

	for i := range h.resResized {
		h.resResized[i] = binary.LittleEndian.Uint16(buf[hOffResResized+i*2:])
	}

	h.reserved32 = binary.LittleEndian.Uint32(buf[hOffReserved32:])
	h.reserved64 = binary.LittleEndian.Uint64(buf[hOffReserved64:])

	return h
}

// isValidFlag values for slot.isValid (spec.md §3).
const (
	slotEmpty    uint16 = 0
	slotNonEmpty uint16 = 1
)

// Resolution indices, fixed by spec.md §3/§6.
const (
	Thumb Resolution = 0
	Small Resolution = 1
	Original Resolution = 2

	numResolutions = 3
)

// slotSize is the fixed byte length of an encoded slot.
//
//	pict_id    [128]byte
//	sha        [32]byte
//	orig_res   [2]uint32 (width, height)
//	size       [3]uint32
//	offset     [3]uint64
//	is_valid   uint16
//	reserved   uint16
const slotSize = picIDField + shaSize + 2*4 + numResolutions*4 + numResolutions*8 + 2 + 2

// Slot field offsets within the encoded slot buffer.
const (
	sOffPicID    = 0
	sOffSHA      = sOffPicID + picIDField
	sOffOrigRes  = sOffSHA + shaSize
	sOffSize     = sOffOrigRes + 2*4
	sOffOffset   = sOffSize + numResolutions*4
	sOffIsValid  = sOffOffset + numResolutions*8
	sOffReserved = sOffIsValid + 2
)

// slot is the in-memory mirror of one metadata record (spec.md §3).
type slot struct {
	picID      string
	sha        [shaSize]byte
	origWidth  uint32
	origHeight uint32
	size       [numResolutions]uint32
	offset     [numResolutions]uint64
	isValid    uint16
	reserved   uint16
}

func (s *slot) valid() bool { return s.isValid == slotNonEmpty }

// encodeSlot serializes s into a slotSize-byte buffer.
func encodeSlot(s *slot) []byte {
	buf := make([]byte, slotSize)

	putFixedString(buf[sOffPicID:sOffPicID+picIDField], s.picID)
	copy(buf[sOffSHA:sOffSHA+shaSize], s.sha[:])

	binary.LittleEndian.PutUint32(buf[sOffOrigRes:], s.origWidth)
	binary.LittleEndian.PutUint32(buf[sOffOrigRes+4:], s.origHeight)

	for i, v := range s.size {
		binary.LittleEndian.PutUint32(buf[sOffSize+i*4:], v)
	}

	for i, v := range s.offset {
		binary.LittleEndian.PutUint64(buf[sOffOffset+i*8:], v)
	}

	binary.LittleEndian.PutUint16(buf[sOffIsValid:], s.isValid)
	binary.LittleEndian.PutUint16(buf[sOffReserved:], s.reserved)

	return buf
}

// decodeSlot deserializes a slotSize-byte buffer into a slot.
func decodeSlot(buf []byte) slot {
	var s slot

	s.picID = getFixedString(buf[sOffPicID : sOffPicID+picIDField])
	copy(s.sha[:], buf[sOffSHA:sOffSHA+shaSize])

	s.origWidth = binary.LittleEndian.Uint32(buf[sOffOrigRes:])
	s.origHeight = binary.LittleEndian.Uint32(buf[sOffOrigRes+4:])

	for i := range s.size {
		s.size[i] = binary.LittleEndian.Uint32(buf[sOffSize+i*4:])
	}

	for i := range s.offset {
		s.offset[i] = binary.LittleEndian.Uint64(buf[sOffOffset+i*8:])
	}

	s.isValid = binary.LittleEndian.Uint16(buf[sOffIsValid:])
	s.reserved = binary.LittleEndian.Uint16(buf[sOffReserved:])

	return s
}

// slotOffset returns the absolute file offset of slot i.
func slotOffset(i int) int64 {
	return int64(headerSize) + int64(i)*int64(slotSize)
}

// tableEnd returns the first byte offset past the metadata table, i.e.
// the lowest legal blob offset, for a table with maxFiles slots.
func tableEnd(maxFiles uint32) int64 {
	return int64(headerSize) + int64(maxFiles)*int64(slotSize)
}

// putFixedString copies s into buf, null-terminating and zero-padding.
// Callers must ensure len(s) < len(buf).
func putFixedString(buf []byte, s string) {
	clear(buf)
	copy(buf, s)
}

// getFixedString extracts a null-terminated string from a fixed-width
// buffer, per the convention used by the original file format.
func getFixedString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}

	return string(buf)
}
