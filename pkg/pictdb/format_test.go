package pictdb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	h := header{
		dbName:     "mydb",
		version:    7,
		numFiles:   3,
		maxFiles:   10,
		resResized: [4]uint16{64, 64, 256, 256},
		reserved32: 0,
		reserved64: 0,
	}

	buf := encodeHeader(&h)
	if len(buf) != headerSize {
		t.Fatalf("encodeHeader produced %d bytes, want %d", len(buf), headerSize)
	}

	got := decodeHeader(buf)
	if diff := cmp.Diff(h, got, cmp.AllowUnexported(header{})); diff != "" {
		t.Errorf("decodeHeader(encodeHeader(h)) mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	s := slot{
		picID:      "holiday.jpg",
		sha:        [shaSize]byte{1, 2, 3, 4, 5},
		origWidth:  1920,
		origHeight: 1080,
		size:       [numResolutions]uint32{100, 200, 3000},
		offset:     [numResolutions]uint64{headerSize, headerSize + 100, headerSize + 300},
		isValid:    slotNonEmpty,
	}

	buf := encodeSlot(&s)
	if len(buf) != slotSize {
		t.Fatalf("encodeSlot produced %d bytes, want %d", len(buf), slotSize)
	}

	got := decodeSlot(buf)
	if diff := cmp.Diff(s, got, cmp.AllowUnexported(slot{})); diff != "" {
		t.Errorf("decodeSlot(encodeSlot(s)) mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedStringTruncatesAtNull(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 8)
	putFixedString(buf, "abc")

	want := []byte{'a', 'b', 'c', 0, 0, 0, 0, 0}
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Errorf("putFixedString mismatch (-want +got):\n%s", diff)
	}

	if got := getFixedString(buf); got != "abc" {
		t.Errorf("getFixedString() = %q, want %q", got, "abc")
	}
}

func TestSlotOffsetsAreContiguous(t *testing.T) {
	t.Parallel()

	const maxFiles = 4

	for i := 0; i < maxFiles; i++ {
		want := int64(headerSize) + int64(i)*int64(slotSize)
		if got := slotOffset(i); got != want {
			t.Errorf("slotOffset(%d) = %d, want %d", i, got, want)
		}
	}

	if got, want := tableEnd(maxFiles), slotOffset(maxFiles); got != want {
		t.Errorf("tableEnd(%d) = %d, want %d", maxFiles, got, want)
	}
}
