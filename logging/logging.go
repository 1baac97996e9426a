package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	FileLevel      logrus.Level
	ConsoleLevel   logrus.Level
	FileDir        string
	DisableConsole bool

	// set by GenerateTestConfig, replaces both console and file output
	testingT    testing.TB
	testingDone *atomic.Bool
}

func GenerateTestConfig(t testing.TB) *Config {
	done := &atomic.Bool{}
	t.Cleanup(func() {
		done.Store(true)
	})

	return &Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.DebugLevel,
		DisableConsole: true,
		testingT:       t,
		testingDone:    done,
	}
}

var (
	configLock    sync.RWMutex
	defaultConfig = Config{
		FileLevel:    logrus.DebugLevel,
		ConsoleLevel: logrus.InfoLevel,
	}

	defaultLoggerLock sync.Mutex
	defaultLogger     *logrus.Logger
)

func SetDefaultConfig(config *Config) {
	configLock.Lock()
	defaultConfig = *config
	configLock.Unlock()

	defaultLoggerLock.Lock()
	defaultLogger = nil
	defaultLoggerLock.Unlock()
}

/*
NewLogger creates a logger following the default config: console output at ConsoleLevel,
plus a daily file under FileDir at FileLevel when FileDir is set.
*/
func NewLogger() *logrus.Logger {
	configLock.RLock()
	config := defaultConfig
	configLock.RUnlock()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.PanicLevel

	if config.testingT != nil {
		logger.AddHook(&testingHook{t: config.testingT, done: config.testingDone, level: config.ConsoleLevel})
		level = maxLevel(level, config.ConsoleLevel)
	}

	if !config.DisableConsole {
		logger.AddHook(newWriterHook(os.Stdout, config.ConsoleLevel))
		level = maxLevel(level, config.ConsoleLevel)
	}

	if len(config.FileDir) != 0 {
		hook, err := newDailyFileHook(config.FileDir, config.FileLevel)
		if err != nil {
			logrus.WithError(err).Errorf("create log file hook in [%s] fail", config.FileDir)
		} else {
			logger.AddHook(hook)
			level = maxLevel(level, config.FileLevel)
		}
	}

	logger.SetLevel(level)
	return logger
}

// Default returns a logger shared by the whole process.
func Default() *logrus.Logger {
	defaultLoggerLock.Lock()
	defer defaultLoggerLock.Unlock()

	if defaultLogger == nil {
		defaultLogger = NewLogger()
	}

	return defaultLogger
}

func maxLevel(a, b logrus.Level) logrus.Level {
	if a > b {
		return a
	}
	return b
}

func levelsUpTo(level logrus.Level) []logrus.Level {
	ret := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= level {
			ret = append(ret, l)
		}
	}
	return ret
}

func dailyLogFileName(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format("2006-01-02")+".log")
}
