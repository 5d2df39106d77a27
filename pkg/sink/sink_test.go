package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/internal/logger"
	"github.com/screa/pr000xy-miner/pkg/reward"
	"github.com/screa/pr000xy-miner/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHit(nonce uint64) types.Hit {
	addr := common.HexToAddress("0x0000001010101010101010101010101010101010")
	return types.Hit{
		Submitter: common.HexToAddress("0x000000006b9b8C1aC1392B2f53f02FC9085EbD6B"),
		Nonce:     nonce,
		Address:   addr,
		Score:     reward.ScoreOf(addr),
	}
}

func testOptions() Options {
	return Options{Buffer: 4, MaxRetries: 2, RetryDelay: time.Millisecond}
}

func TestFileAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuableProxies.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

	s, err := Open(path, logger.Discard(), testOptions())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, testHit(1)))
	require.NoError(t, s.Record(ctx, testHit(2)))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "existing", lines[0])
	assert.Equal(t, testHit(1).String(), lines[1])
	assert.Equal(t, testHit(2).String(), lines[2])
}

func TestFileConcurrentLinesDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.txt")
	s, err := Open(path, logger.Discard(), testOptions())
	require.NoError(t, err)

	const lanes, perLane = 8, 50
	var wg sync.WaitGroup
	for lane := 0; lane < lanes; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			for i := 0; i < perLane; i++ {
				assert.NoError(t, s.Record(context.Background(), testHit(uint64(lane*perLane+i))))
			}
		}(lane)
	}
	wg.Wait()
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, lanes*perLane)

	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		assert.Contains(t, l, " => 0x0000001010101010101010101010101010101010 (3 & 3: 1)")
		seen[l] = true
	}
	assert.Len(t, seen, lanes*perLane)
}

type flakyWriter struct {
	mu       sync.Mutex
	failures int
	partial  int // bytes accepted by each failing write
	calls    int
	buf      bytes.Buffer
}

func (w *flakyWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.failures > 0 {
		w.failures--
		n := min(w.partial, len(s))
		w.buf.WriteString(s[:n])
		return n, errors.New("disk full")
	}
	return w.buf.WriteString(s)
}

func (w *flakyWriter) Close() error { return nil }

func TestFileRetriesWrites(t *testing.T) {
	w := &flakyWriter{failures: 2}
	var logBuf bytes.Buffer
	s := newFile("flaky", w, logger.NewWriter(&logBuf), testOptions())

	require.NoError(t, s.Record(context.Background(), testHit(1)))
	require.NoError(t, s.Close())

	assert.Equal(t, 3, w.calls)
	assert.Equal(t, testHit(1).String()+"\n", w.buf.String())
	assert.NotContains(t, logBuf.String(), "append to")
}

func TestFileRetriesResumeShortWrites(t *testing.T) {
	w := &flakyWriter{failures: 2, partial: 10}
	s := newFile("short", w, logger.Discard(), testOptions())

	require.NoError(t, s.Record(context.Background(), testHit(1)))
	require.NoError(t, s.Record(context.Background(), testHit(2)))
	require.NoError(t, s.Close())

	assert.Equal(t, testHit(1).String()+"\n"+testHit(2).String()+"\n", w.buf.String())
}

func TestFileGivesUpAndKeepsGoing(t *testing.T) {
	w := &flakyWriter{failures: 3}
	var logBuf bytes.Buffer
	s := newFile("flaky", w, logger.NewWriter(&logBuf), testOptions())

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, testHit(1)))
	require.NoError(t, s.Record(ctx, testHit(2)))
	require.NoError(t, s.Close())

	assert.Contains(t, logBuf.String(), "append to flaky failed: disk full")
	assert.Equal(t, testHit(2).String()+"\n", w.buf.String())
}

func TestFileEcho(t *testing.T) {
	var logBuf bytes.Buffer
	opts := testOptions()
	opts.Echo = true
	s := newFile("echo", &flakyWriter{}, logger.NewWriter(&logBuf), opts)

	require.NoError(t, s.Record(context.Background(), testHit(9)))
	require.NoError(t, s.Close())
	assert.Contains(t, logBuf.String(), testHit(9).String())
}

func TestRecordAfterClose(t *testing.T) {
	s := newFile("closed", &flakyWriter{}, logger.Discard(), testOptions())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Record(context.Background(), testHit(1)), ErrClosed)
}

type blockingWriter struct {
	release chan struct{}
}

func (w *blockingWriter) WriteString(s string) (int, error) {
	<-w.release
	return len(s), nil
}

func (w *blockingWriter) Close() error { return nil }

func TestRecordHonoursCancellation(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	s := newFile("blocked", w, logger.Discard(), Options{Buffer: 1, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	// one line is held by the writer, one fills the buffer
	require.NoError(t, s.Record(ctx, testHit(1)))
	require.NoError(t, s.Record(ctx, testHit(2)))

	errc := make(chan error, 1)
	go func() { errc <- s.Record(ctx, testHit(3)) }()
	cancel()

	select {
	case err := <-errc:
		// the writer may have drained a slot before the cancellation landed
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Record did not return after cancellation")
	}

	close(w.release)
	require.NoError(t, s.Close())
}

func TestRecorderFunc(t *testing.T) {
	var got []string
	r := RecorderFunc(func(_ context.Context, h types.Hit) error {
		got = append(got, fmt.Sprint(h.Nonce))
		return nil
	})
	require.NoError(t, r.Record(context.Background(), testHit(5)))
	require.NoError(t, Discard.Record(context.Background(), testHit(6)))
	assert.Equal(t, []string{"5"}, got)
}
