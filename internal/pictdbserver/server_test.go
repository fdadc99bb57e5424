package pictdbserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/panv/pictdb/pkg/pictdb"
)

// These tests stay clear of the image codec: they exercise an empty
// database's list/delete/read-error paths. Insert/resize round trips
// that decode real JPEG bytes are covered at the pictdb package level.

func newTestServer(t *testing.T) *Server {
	t.Helper()

	// Database paths are limited to 31 bytes, which t.TempDir() paths
	// exceed, so use a fresh directory directly under the system temp dir.
	dir, err := os.MkdirTemp("", "p")
	require.NoError(t, err)

	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path := filepath.Join(dir, "db")

	db, err := pictdb.Create(path, pictdb.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return New(db)
}

func TestHandleListEmptyDatabase(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/list", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"Pictures":[]}`, rec.Body.String())
}

func TestHandleReadUnknownIdReturnsNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/read?pict_id=missing", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReadUnknownResolutionReturnsBadRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/read?pict_id=pic1&res=huge", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDeleteUnknownIdReturnsNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pictDB/delete?pict_id=missing", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInsertRejectsMissingImageField(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/pictDB/insert", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
