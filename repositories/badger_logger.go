package repositories

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ badger.Logger = (*badgerLogWriter)(nil)

// badgerLogWriter redirects Badger's printf-style output to the application
// slog.Logger, tagging every entry with the component it comes from.
type badgerLogWriter struct {
	logger *slog.Logger
}

func NewBadgerLogger(logger *slog.Logger) badger.Logger {
	return &badgerLogWriter{logger: logger.With("component", "badger")}
}

// Badger terminates most messages with a newline
func format(f string, v ...any) string {
	return strings.TrimRight(fmt.Sprintf(f, v...), "\n")
}

func (w *badgerLogWriter) Errorf(f string, v ...any)   { w.logger.Error(format(f, v...)) }
func (w *badgerLogWriter) Warningf(f string, v ...any) { w.logger.Warn(format(f, v...)) }
func (w *badgerLogWriter) Infof(f string, v ...any)    { w.logger.Info(format(f, v...)) }
func (w *badgerLogWriter) Debugf(f string, v ...any)   { w.logger.Debug(format(f, v...)) }
