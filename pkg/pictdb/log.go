package pictdb

import "github.com/sirupsen/logrus"

// dbLogger returns a logger scoped to a single database path. Callers that
// want to observe operation-level logging (duration, bytes, error) can
// install their own logrus hooks/formatters on logrus.StandardLogger();
// pictDB does not configure global logging state itself.
func dbLogger(path string) *logrus.Entry {
	return logrus.WithField("db", path)
}
