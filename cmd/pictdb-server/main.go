// Command pictdb-server exposes a single pictDB database over HTTP.
package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/panv/pictdb/internal/pictdbserver"
	"github.com/panv/pictdb/pkg/pictdb"
)

const (
	envListenAddr = "PICTDB_LISTEN_ADDR"
	envDBPath     = "PICTDB_DB_PATH"

	defaultListenAddr = ":8080"
)

func main() {
	dbPath := os.Getenv(envDBPath)
	if dbPath == "" {
		logrus.Fatalf("%s must name the pictDB file to serve", envDBPath)
	}

	listenAddr := os.Getenv(envListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	db, err := pictdb.Open(dbPath, pictdb.ReadWrite)
	if err != nil {
		logrus.WithError(err).Fatal("opening database")
	}
	defer db.Close()

	srv := pictdbserver.New(db)

	logrus.WithFields(logrus.Fields{"addr": listenAddr, "db": dbPath}).Info("pictdb-server listening")

	err = http.ListenAndServe(listenAddr, srv.Router())
	if err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
