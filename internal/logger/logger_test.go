package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Formats(t *testing.T) {
	for _, f := range []string{"dev", "json", "tskv"} {
		l, err := New(f, "debug")
		require.NoError(t, err, f)
		assert.NotNil(t, l)
	}

	_, err := New("xml", "info")
	assert.Error(t, err)

	_, err = New("json", "loud")
	assert.Error(t, err)
}

func TestTSKV_Line(t *testing.T) {
	var out bytes.Buffer
	l := NewTSKV(zapcore.AddSync(&out), zapcore.InfoLevel).WithOptions(zap.WithCaller(false))

	l.With(zap.String("b", "2")).Info("hello\tworld\nagain", zap.Int("a", 1), zap.Duration("took", 1500*time.Millisecond))
	l.Debug("dropped")

	line := out.String()
	require.True(t, strings.HasPrefix(line, "timestamp="), line)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))

	parts := strings.Split(strings.TrimSuffix(line, "\n"), "\t")
	require.Len(t, parts, 6)
	_, err := time.Parse(tskvTimeLayout, strings.TrimPrefix(parts[0], "timestamp="))
	assert.NoError(t, err)
	assert.Equal(t, "level=info", parts[1])
	assert.Equal(t, `message=hello\tworld\nagain`, parts[2])
	assert.Equal(t, "a=1", parts[3])
	assert.Equal(t, "b=2", parts[4])
	assert.Equal(t, "took=1.5s", parts[5])
}

func TestTSKV_EscapesFieldValues(t *testing.T) {
	var out bytes.Buffer
	l := NewTSKV(zapcore.AddSync(&out), zapcore.DebugLevel).WithOptions(zap.WithCaller(false))

	l.Warn("x", zap.String("path", "a\r\nb"), zap.Strings("ids", []string{"f1", "f2"}))

	line := out.String()
	assert.Contains(t, line, "\tlevel=warn\t")
	assert.Contains(t, line, `path=a\r\nb`)
	assert.Contains(t, line, `ids=["f1","f2"]`)
}
