// Package logging sets up the application logger. A TUI owns the terminal,
// so logs go to a rotated file under the XDG state directory instead of
// stderr.
package logging

import (
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appName     = "platter"
	logFileName = "platter.log"
)

// Open returns a logger writing to the application log file, with rotation.
func Open() (*slog.Logger, error) {
	path, err := xdg.StateFile(filepath.Join(appName, logFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(path), nil
}

// OpenAt returns a logger writing to an explicit file path.
func OpenAt(path string) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
