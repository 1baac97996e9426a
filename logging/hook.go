package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var hookFormatter = &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}

type writerHook struct {
	mu     sync.Mutex
	writer io.Writer
	levels []logrus.Level
}

func newWriterHook(writer io.Writer, level logrus.Level) *writerHook {
	return &writerHook{writer: writer, levels: levelsUpTo(level)}
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := hookFormatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(line)
	return err
}

// dailyFileHook appends to <dir>/<yyyy-mm-dd>.log and rolls over at midnight.
type dailyFileHook struct {
	mu      sync.Mutex
	dir     string
	levels  []logrus.Level
	current string
	file    *os.File
}

func newDailyFileHook(dir string, level logrus.Level) (*dailyFileHook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &dailyFileHook{dir: dir, levels: levelsUpTo(level)}, nil
}

func (h *dailyFileHook) Levels() []logrus.Level {
	return h.levels
}

func (h *dailyFileHook) Fire(entry *logrus.Entry) error {
	line, err := hookFormatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	name := dailyLogFileName(h.dir, time.Now())
	if name != h.current || h.file == nil {
		if h.file != nil {
			_ = h.file.Close()
		}
		h.file, err = os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			h.file = nil
			return err
		}
		h.current = name
	}

	_, err = h.file.Write(line)
	return err
}

// testingHook forwards entries to t.Log until the test finishes; later entries are dropped.
type testingHook struct {
	t     testing.TB
	done  *atomic.Bool
	level logrus.Level
}

func (h *testingHook) Levels() []logrus.Level {
	return levelsUpTo(h.level)
}

func (h *testingHook) Fire(entry *logrus.Entry) error {
	if h.done.Load() {
		return nil
	}

	line, err := hookFormatter.Format(entry)
	if err != nil {
		return err
	}
	h.t.Log(strings.TrimRight(string(line), "\n"))
	return nil
}
