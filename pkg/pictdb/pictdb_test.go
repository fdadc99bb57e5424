package pictdb

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeImage is a deterministic imageAdapter stand-in so the slot-table
// invariants can be exercised without decoding real JPEG bytes.
//
// It treats the first four bytes of a buffer as width/height (two
// uint16s, one byte each would overflow - two bytes each) so resized
// output is distinguishable from its input without an actual codec.
type fakeImage struct {
	resizeCalls *int
}

func (f fakeImage) dimensions(buf []byte) (uint32, uint32, error) {
	if len(buf) < 4 {
		return 0, 0, newErr(KindImage, "dimensions", fmt.Errorf("buffer too short"))
	}

	w := uint32(buf[0])<<8 | uint32(buf[1])
	h := uint32(buf[2])<<8 | uint32(buf[3])

	if w == 0 || h == 0 {
		return 0, 0, newErr(KindImage, "dimensions", fmt.Errorf("non-positive dimensions"))
	}

	return w, h, nil
}

func (f fakeImage) resizeToFit(buf []byte, maxW, maxH uint16) ([]byte, error) {
	if f.resizeCalls != nil {
		*f.resizeCalls++
	}

	w, h, err := f.dimensions(buf)
	if err != nil {
		return nil, err
	}

	tw, th := fitDimensions(w, h, uint32(maxW), uint32(maxH))

	out := make([]byte, 4+len(buf))
	out[0], out[1] = byte(tw>>8), byte(tw)
	out[2], out[3] = byte(th>>8), byte(th)
	copy(out[4:], buf)

	return out, nil
}

func fakeJPEG(w, h uint16, payload string) []byte {
	buf := make([]byte, 4+len(payload))
	buf[0], buf[1] = byte(w>>8), byte(w)
	buf[2], buf[3] = byte(h>>8), byte(h)
	copy(buf[4:], payload)

	return buf
}

// shortDBPath returns a database path inside a fresh directory under the
// system temp dir. Database paths are limited to maxDBNameLen (31) bytes,
// which t.TempDir() paths exceed.
func shortDBPath(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "p")
	require.NoError(t, err)

	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return filepath.Join(dir, "db")
}

func newTestDB(t *testing.T, cfg Config) *Db {
	t.Helper()

	path := shortDBPath(t)

	db, err := Create(path, cfg)
	require.NoError(t, err)

	db.img = fakeImage{}

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestCreateOpenRoundTrip(t *testing.T) {
	t.Parallel()

	path := shortDBPath(t)
	cfg := Config{MaxFiles: 5, ThumbRes: Dimensions{Width: 32, Height: 32}, SmallRes: Dimensions{Width: 128, Height: 128}}

	db, err := Create(path, cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := Open(path, ReadWrite)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, cfg.MaxFiles, reopened.hdr.maxFiles)
	require.Equal(t, uint32(0), reopened.hdr.numFiles)
	require.Equal(t, [4]uint16{32, 32, 128, 128}, reopened.hdr.resResized)

	if diff := cmp.Diff(make([]slot, cfg.MaxFiles), reopened.slots, cmp.AllowUnexported(slot{})); diff != "" {
		t.Errorf("freshly created slots should all be zero-value (-want +got):\n%s", diff)
	}
}

func TestInsertReadOriginalRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	bytes := fakeJPEG(800, 600, "hello")

	require.NoError(t, db.Insert("pic1", bytes))

	got, err := db.Read("pic1", Original)
	require.NoError(t, err)
	require.Equal(t, bytes, got)
}

func TestInsertDuplicateIdRollsBackSlot(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))

	err := db.Insert("pic1", fakeJPEG(10, 10, "b"))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindDuplicateId, kind)

	// The slot reserved for the failed insert must be back to EMPTY, not
	// left half-populated.
	require.Equal(t, uint32(1), db.hdr.numFiles)
	require.False(t, db.slots[1].valid())
}

func TestInsertContentDedupSharesBlob(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	content := fakeJPEG(10, 10, "shared")

	require.NoError(t, db.Insert("pic1", content))
	require.NoError(t, db.Insert("pic2", content))

	i1, ok := db.findByID("pic1")
	require.True(t, ok)
	i2, ok := db.findByID("pic2")
	require.True(t, ok)

	require.Equal(t, db.slots[i1].offset[Original], db.slots[i2].offset[Original])
	require.Equal(t, db.slots[i1].size[Original], db.slots[i2].size[Original])
}

func TestInsertFullDatabase(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, Config{MaxFiles: 1, ThumbRes: Dimensions{Width: 16, Height: 16}, SmallRes: Dimensions{Width: 64, Height: 64}})

	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))

	err := db.Insert("pic2", fakeJPEG(10, 10, "b"))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindFullDatabase, kind)
}

func TestInsertInvalidPicId(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	err := db.Insert("", fakeJPEG(10, 10, "a"))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindInvalidPicId, kind)
}

func TestReadLazyResizeMaterializesOnce(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	calls := 0
	db.img = fakeImage{resizeCalls: &calls}

	require.NoError(t, db.Insert("pic1", fakeJPEG(800, 600, "hello")))

	i, ok := db.findByID("pic1")
	require.True(t, ok)
	require.Equal(t, uint32(0), db.slots[i].size[Thumb])

	first, err := db.Read("pic1", Thumb)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.NotZero(t, db.slots[i].size[Thumb])

	second, err := db.Read("pic1", Thumb)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "second read of the same resolution must not re-resize")
	require.Equal(t, first, second)
}

func TestReadLazyResizePropagatesAcrossSharedContent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	calls := 0
	db.img = fakeImage{resizeCalls: &calls}

	content := fakeJPEG(800, 600, "shared")

	require.NoError(t, db.Insert("pic1", content))
	require.NoError(t, db.Insert("pic2", content))

	_, err := db.Read("pic1", Small)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	i2, ok := db.findByID("pic2")
	require.True(t, ok)
	require.NotZero(t, db.slots[i2].size[Small], "resize must propagate to every slot sharing the content")

	// Reading pic2 at the same resolution must reuse the materialized
	// blob rather than resizing again.
	_, err = db.Read("pic2", Small)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestReadUnknownResolution(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())
	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))

	_, err := db.Read("pic1", Resolution(99))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindResolutions, kind)
}

func TestDeleteThenReinsertReusesSlot(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, Config{MaxFiles: 1, ThumbRes: Dimensions{Width: 16, Height: 16}, SmallRes: Dimensions{Width: 64, Height: 64}})

	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))
	require.NoError(t, db.Delete("pic1"))

	_, err := db.Read("pic1", Original)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindFileNotFound, kind)

	require.NoError(t, db.Insert("pic2", fakeJPEG(20, 20, "b")))
}

func TestDeleteUnknownId(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	err := db.Delete("missing")
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindFileNotFound, kind)
}

func TestListReflectsValidSlotsOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, DefaultConfig())

	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))
	require.NoError(t, db.Insert("pic2", fakeJPEG(10, 10, "b")))
	require.NoError(t, db.Delete("pic1"))

	out, err := db.List(ListJSON)
	require.NoError(t, err)
	require.JSONEq(t, `{"Pictures":["pic2"]}`, out)
}

func TestGCCompactsAndPreservesHeaderIdentity(t *testing.T) {
	t.Parallel()

	path := shortDBPath(t)
	cfg := Config{MaxFiles: 3, ThumbRes: Dimensions{Width: 16, Height: 16}, SmallRes: Dimensions{Width: 64, Height: 64}}

	db, err := Create(path, cfg)
	require.NoError(t, err)

	db.img = fakeImage{}

	require.NoError(t, db.Insert("pic1", fakeJPEG(10, 10, "a")))
	require.NoError(t, db.Insert("pic2", fakeJPEG(20, 20, "b")))
	require.NoError(t, db.Insert("pic3", fakeJPEG(30, 30, "c")))
	require.NoError(t, db.Delete("pic2"))

	_, err = db.Read("pic1", Thumb)
	require.NoError(t, err)

	versionBeforeGC := db.hdr.version
	dbName := db.hdr.dbName

	tempPath := shortDBPath(t)
	require.NoError(t, db.GC(tempPath))

	require.Equal(t, versionBeforeGC, db.hdr.version)
	require.Equal(t, dbName, db.hdr.dbName)
	require.Equal(t, uint32(2), db.hdr.numFiles)

	ids := db.validIDs()
	require.Equal(t, []string{"pic1", "pic3"}, ids)

	i1, ok := db.findByID("pic1")
	require.True(t, ok)
	require.NotZero(t, db.slots[i1].size[Thumb], "materialized resolutions must survive GC")

	got, err := db.Read("pic3", Original)
	require.NoError(t, err)
	require.Equal(t, fakeJPEG(30, 30, "c"), got)
}

func TestInsertOnReadOnlyDatabase(t *testing.T) {
	t.Parallel()

	path := shortDBPath(t)

	db, err := Create(path, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := Open(path, ReadOnly)
	require.NoError(t, err)
	defer ro.Close()

	err = ro.Insert("pic1", fakeJPEG(10, 10, "a"))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindInvalidArgument, kind)
}
