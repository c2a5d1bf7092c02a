package badger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// badgerLogger routes badger's printf-style output into zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func newLogger(l *zap.Logger) *badgerLogger {
	return &badgerLogger{s: l.Named("badger").Sugar()}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.s.Error(message(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.s.Warn(message(format, args))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.s.Info(message(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.s.Debug(message(format, args))
}

// badger terminates most messages with a newline.
func message(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
