package pictdbserver

import (
	"fmt"
	"io"
	"net/http"

	"github.com/panv/pictdb/pkg/pictdb"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var text string

	err := s.withDB(func(db *pictdb.Db) error {
		out, err := db.List(pictdb.ListJSON)
		text = out

		return err
	})
	if err != nil {
		s.writeError(w, "list", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("pict_id")

	res := pictdb.Original

	if rawRes := r.URL.Query().Get("res"); rawRes != "" {
		parsed, err := pictdb.ParseResolution(rawRes)
		if err != nil {
			s.writeError(w, "read", err)

			return
		}

		res = parsed
	}

	var bytes []byte

	err := s.withDB(func(db *pictdb.Db) error {
		out, err := db.Read(id, res)
		bytes = out

		return err
	})
	if err != nil {
		s.writeError(w, "read", err)

		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(bytes)
}

const maxUploadBytes = 32 << 20 // 32 MiB, matching the original CLI's single-file insert shape.

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		s.badRequest(w, "insert", fmt.Errorf("parsing multipart form: %w", err))

		return
	}

	id := r.FormValue("pict_id")

	file, _, err := r.FormFile("image")
	if err != nil {
		s.badRequest(w, "insert", fmt.Errorf("reading image field: %w", err))

		return
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		s.badRequest(w, "insert", fmt.Errorf("reading upload: %w", err))

		return
	}

	err = s.withDB(func(db *pictdb.Db) error {
		return db.Insert(id, bytes)
	})
	if err != nil {
		s.writeError(w, "insert", err)

		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("pict_id")

	err := s.withDB(func(db *pictdb.Db) error {
		return db.Delete(id)
	})
	if err != nil {
		s.writeError(w, "delete", err)

		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
