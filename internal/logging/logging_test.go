package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/config"
)

func TestNew_WritesFileAndChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, lines, closer, err := New(config.LogConfig{File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Printf("WorkoutManager: started %s", "Day 1")
	line := <-lines
	assert.True(t, strings.HasSuffix(line, "WorkoutManager: started Day 1"), line)

	require.NoError(t, closer.Close())
	_, ok := <-lines
	assert.False(t, ok, "channel should be closed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WorkoutManager: started Day 1")
}

type memFile struct {
	strings.Builder
	closed bool
}

func (m *memFile) Close() error {
	m.closed = true
	return nil
}

func TestSink_SplitsLinesAndDropsWhenFull(t *testing.T) {
	file := &memFile{}
	sink := NewSink(file)

	_, err := sink.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, "one", <-sink.Lines())
	assert.Equal(t, "two", <-sink.Lines())

	for i := 0; i < LineBuffer+10; i++ {
		_, err := sink.Write([]byte("line\n"))
		require.NoError(t, err)
	}
	assert.Len(t, sink.Lines(), LineBuffer)

	require.NoError(t, sink.Close())
	assert.True(t, file.closed)

	// Writes after close still reach the file
	_, err = sink.Write([]byte("late\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.String(), "late\n"))
}
