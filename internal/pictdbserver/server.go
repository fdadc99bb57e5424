// Package pictdbserver exposes a pictDB database over HTTP: list, read,
// insert and delete, each request serialized against the single
// underlying *pictdb.Db handle.
package pictdbserver

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/panv/pictdb/pkg/pictdb"
)

// Server adapts a single *pictdb.Db to HTTP. The core gives no
// concurrency guarantees of its own (spec.md §5), so every handler
// acquires mu for the duration of its call into db.
type Server struct {
	mu  sync.Mutex
	db  *pictdb.Db
	log *logrus.Entry
}

// New wraps db for HTTP access and builds its chi router.
func New(db *pictdb.Db) *Server {
	return &Server{db: db, log: logrus.WithField("component", "pictdb-server")}
}

// Router builds the routes described in SPEC_FULL.md §6.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/pictDB", func(r chi.Router) {
		r.Get("/list", s.handleList)
		r.Get("/read", s.handleRead)
		r.Post("/insert", s.handleInsert)
		r.Get("/delete", s.handleDelete)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Info("request")
		next.ServeHTTP(w, r)
	})
}

// withDB serializes access to s.db for the duration of fn.
func (s *Server) withDB(fn func(db *pictdb.Db) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.db)
}

// writeError renders err as a small HTML body with a status derived from
// its Kind, and logs it (SPEC_FULL.md §6).
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError

	if kind, ok := pictdb.KindOf(err); ok {
		switch kind {
		case pictdb.KindFileNotFound:
			status = http.StatusNotFound
		case pictdb.KindInvalidArgument, pictdb.KindInvalidPicId, pictdb.KindResolutions, pictdb.KindDuplicateId:
			status = http.StatusBadRequest
		}
	}

	s.log.WithFields(logrus.Fields{"op": op, "status": status}).WithError(err).Warn("request failed")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("<html><body><h1>pictDB error</h1><p>" + op + ": " + err.Error() + "</p></body></html>"))
}

// badRequest renders a 400 for malformed HTTP input that never reaches
// the core (a missing multipart field, an unparsable request body).
func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.log.WithFields(logrus.Fields{"op": op, "status": http.StatusBadRequest}).WithError(err).Warn("request failed")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte("<html><body><h1>pictDB error</h1><p>" + op + ": " + err.Error() + "</p></body></html>"))
}
