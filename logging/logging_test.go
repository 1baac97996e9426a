package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FileHook(t *testing.T) {
	dir := t.TempDir()
	SetDefaultConfig(&Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.InfoLevel,
		FileDir:        dir,
		DisableConsole: true,
	})
	defer SetDefaultConfig(GenerateTestConfig(t))

	logger := NewLogger()
	logger.Debugf("candidate [%s] scored", "MAPK")
	logger.Tracef("not written")

	data, err := os.ReadFile(dailyLogFileName(dir, time.Now()))
	require.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "candidate [MAPK] scored"))
	assert.False(t, strings.Contains(string(data), "not written"))
}

func TestDefault_ResetBySetDefaultConfig(t *testing.T) {
	SetDefaultConfig(GenerateTestConfig(t))
	first := Default()
	assert.Same(t, first, Default())

	SetDefaultConfig(GenerateTestConfig(t))
	assert.NotSame(t, first, Default())
}

func TestLevelsUpTo(t *testing.T) {
	levels := levelsUpTo(logrus.WarnLevel)
	assert.Equal(t, []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}, levels)
	assert.Equal(t, filepath.Join("logs", "2026-10-19.log"), dailyLogFileName("logs", time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
}
