// Package sink appends hits to the results log.
//
// Lanes never write the file themselves: every line goes through a channel
// to a single writer goroutine, so lines from different lanes never
// interleave. Failed writes are retried a few times and then logged and
// dropped; losing a line never stops the search.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/screa/pr000xy-miner/internal/logger"
	"github.com/screa/pr000xy-miner/pkg/types"
)

// ErrClosed is returned by Record after Close.
var ErrClosed = errors.New("results sink closed")

// Recorder receives hits from lanes.
type Recorder interface {
	Record(ctx context.Context, hit types.Hit) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, hit types.Hit) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, hit types.Hit) error {
	return f(ctx, hit)
}

// Discard drops every hit.
var Discard Recorder = RecorderFunc(func(context.Context, types.Hit) error { return nil })

// WriteError describes a line that could not be appended.
type WriteError struct {
	Path string
	Line string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("append to %s failed: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Options tune a File sink.
type Options struct {
	Buffer     int
	MaxRetries uint64
	RetryDelay time.Duration
	// Echo prints every line to the process log as well.
	Echo bool
}

// DefaultOptions returns the options used by the miner.
func DefaultOptions() Options {
	return Options{
		Buffer:     256,
		MaxRetries: 3,
		RetryDelay: 50 * time.Millisecond,
		Echo:       true,
	}
}

// File is an append-only results log.
type File struct {
	path   string
	file   writer
	logger *logger.Logger
	opts   Options

	lines chan string
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// Open opens (or creates) path for appending and starts the writer.
func Open(path string, log *logger.Logger, opts Options) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open results log: %w", err)
	}
	return newFile(path, f, log, opts), nil
}

func newFile(path string, w writer, log *logger.Logger, opts Options) *File {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultOptions().Buffer
	}
	s := &File{
		path:   path,
		file:   w,
		logger: log,
		opts:   opts,
		lines:  make(chan string, opts.Buffer),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Record queues hit for writing. It blocks while the queue is full unless
// ctx is cancelled first, in which case the hit is dropped.
func (s *File) Record(ctx context.Context, hit types.Hit) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.lines <- hit.String():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes queued lines and closes the file.
func (s *File) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.lines)
	s.mu.Unlock()

	<-s.done
	return s.file.Close()
}

func (s *File) run() {
	defer close(s.done)
	for line := range s.lines {
		if s.opts.Echo {
			s.logger.Println(line)
		}
		if err := s.write(line + "\n"); err != nil {
			s.logger.Printf("results sink: %v", &WriteError{Path: s.path, Line: line, Err: err})
		}
	}
}

// write appends line, resuming after the bytes a failed attempt already
// wrote so a retry never duplicates part of the line.
func (s *File) write(line string) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryDelay), s.opts.MaxRetries)
	return backoff.Retry(func() error {
		n, err := s.file.WriteString(line)
		line = line[n:]
		return err
	}, policy)
}
