package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer, level Level) *ConsoleLogger {
	l := New(buf, level)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC) }
	return l
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		configured Level
		message    Level
		visible    bool
	}{
		{LevelTrace, LevelTrace, true},
		{LevelDebug, LevelTrace, false},
		{LevelDebug, LevelDebug, true},
		{LevelInfo, LevelDebug, false},
		{LevelInfo, LevelWarn, true},
		{LevelError, LevelWarn, false},
		{LevelError, LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.configured.String()+"/"+tt.message.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := fixedLogger(buf, tt.configured)
			l.logf(tt.message, "hello %d", 42)
			assert.Equal(t, tt.visible, strings.Contains(buf.String(), "hello 42"))
		})
	}
}

func TestFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := fixedLogger(buf, LevelDebug)
	l.Warnf("skipped %s", "/tmp/x")
	assert.Equal(t, "[13:04:05] [WARN] skipped /tmp/x\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestNonTerminalWriterHasNoColor(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, LevelInfo)
	l.Infof("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestDiscardWritesNothing(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(LevelError))
	require.NotPanics(t, func() { l.Errorf("ignored") })
}

func TestConcurrentWritesKeepLinesIntact(t *testing.T) {
	buf := &bytes.Buffer{}
	l := fixedLogger(buf, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Infof("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "[13:04:05] [INFO] line", line)
	}
}
