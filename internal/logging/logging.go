package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to stderr, and additionally to a rotated
// file when logDir is set. Rotation limits follow the usual small-service
// defaults: 10 MB per file, 3 backups, 28 days.
func New(logDir string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if logDir == "" {
		return log
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.WithError(err).Warn("log directory unavailable, logging to stderr only")
		return log
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "roadmap.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotated))
	return log
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
