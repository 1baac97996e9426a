package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

/*
sqlLogger sends gorm logs to logrus with the statement as fields.

	every statement: Debug
	statements slower than slow: Warn
	failed statements: Error, except record-not-found which callers expect
*/
type sqlLogger struct {
	logger *logrus.Logger
	level  logger.LogLevel
	slow   time.Duration
}

func newSQLLogger(l *logrus.Logger, slow time.Duration) *sqlLogger {
	if slow <= 0 {
		slow = defaultSlowQuery
	}
	return &sqlLogger{logger: l, level: logger.Info, slow: slow}
}

func (l *sqlLogger) LogMode(level logger.LogLevel) logger.Interface {
	ret := *l
	ret.level = level
	return &ret
}

func (l *sqlLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.logger.WithContext(ctx).Infof(msg, args...)
	}
}

func (l *sqlLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.WithContext(ctx).Warnf(msg, args...)
	}
}

func (l *sqlLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.logger.WithContext(ctx).Errorf(msg, args...)
	}
}

func (l *sqlLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		entry.WithError(err).Errorf("sql fail: %s", err)
	case elapsed > l.slow && l.level >= logger.Warn:
		entry.Warnf("slow sql over %s", l.slow)
	case l.level >= logger.Info:
		entry.Debug("sql")
	}
}
