package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"":      zapcore.InfoLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		lvl, err := parseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, lvl, in)
	}
	_, err := parseLevel("verbose")
	assert.Error(t, err)
	assert.Error(t, Init("verbose", ""))
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "gomesh.log")
	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	require.NoError(t, InitWithFileConfig("warn", cfg, false))
	defer func() { Log = zap.NewNop() }()

	Log.Info("dropped")
	Log.Warn("mesh built", zap.Int("nodes", 27), zap.String("kind", "Hex8"))
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "mesh built", entry["msg"])
	assert.Equal(t, 27., entry["nodes"])
	assert.Equal(t, "Hex8", entry["kind"])
}
