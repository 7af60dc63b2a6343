package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/hiit-timer/internal/config"
)

// LineBuffer is how many log lines the UI may lag behind before lines are
// dropped from the live pane. The file always gets every line.
const LineBuffer = 256

// Sink writes log output to a rotating file and copies each line to a
// channel read by the in-app log pane.
type Sink struct {
	file io.WriteCloser

	mu     sync.Mutex
	lines  chan string
	closed bool
}

// New builds the application logger. The returned channel carries every
// logged line without its trailing newline and is closed by Close.
func New(cfg config.LogConfig) (*log.Logger, <-chan string, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	sink := NewSink(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	})
	logger := log.New(sink, "", log.LstdFlags)
	return logger, sink.Lines(), sink, nil
}

// NewSink wraps any writer; New uses it with a lumberjack file
func NewSink(file io.WriteCloser) *Sink {
	return &Sink{
		file:  file,
		lines: make(chan string, LineBuffer),
	}
}

func (s *Sink) Lines() <-chan string {
	return s.lines
}

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.file.Write(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return n, err
	}
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case s.lines <- line:
		default:
		}
	}
	return n, err
}

// Close closes the line channel and the underlying file
func (s *Sink) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.lines)
	}
	s.mu.Unlock()
	return s.file.Close()
}
