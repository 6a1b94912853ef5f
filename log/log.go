// Package log is the logrus logger of the application. Nothing is written
// unless logs.write is set; then entries go to one file per day under the
// logs directory.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Fields = logrus.Fields

var logger atomic.Pointer[logrus.Logger]

func init() {
	logger.Store(discard())
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup applies the logs.* configuration.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger.Store(discard())
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")

	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger.Store(l)
	return nil
}

func WithFields(fields Fields) *logrus.Entry {
	return logger.Load().WithFields(fields)
}

func Error(args ...any) { logger.Load().Error(args...) }

func Errorf(format string, args ...any) { logger.Load().Errorf(format, args...) }

func Warn(args ...any) { logger.Load().Warn(args...) }

func Warnf(format string, args ...any) { logger.Load().Warnf(format, args...) }

func Info(args ...any) { logger.Load().Info(args...) }

func Infof(format string, args ...any) { logger.Load().Infof(format, args...) }

func Debug(args ...any) { logger.Load().Debug(args...) }

func Debugf(format string, args ...any) { logger.Load().Debugf(format, args...) }
