package configs

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Log is the shared application logger.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	Log.SetOutput(os.Stdout)
	if os.Getenv("LOG_DEBUG") != "" {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

/* =======================
   GORM logger on logrus
======================= */

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	Log.Infof(msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	Log.Warnf(msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	Log.Errorf(msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil:
		Log.WithFields(logrus.Fields{"src": file, "rows": rows, "elapsed": elapsed.String()}).
			Errorf("%v | %s", err, sql)
	case elapsed > l.SlowThreshold:
		Log.WithFields(logrus.Fields{"src": file, "rows": rows, "elapsed": elapsed.String()}).
			Warnf("SLOW SQL | %s", sql)
	case l.LogLevel >= gormLogger.Info:
		Log.WithFields(logrus.Fields{"src": file, "rows": rows, "elapsed": elapsed.String()}).
			Debug(sql)
	}
}
