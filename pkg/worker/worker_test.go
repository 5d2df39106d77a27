package worker

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/internal/logger"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/sink"
	"github.com/screa/pr000xy-miner/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFactory   = common.HexToAddress("0x000000009a9fc3ac5280bA0D3eA852E57DD2ac1b")
	testSubmitter = common.HexToAddress("0x000000006b9b8C1aC1392B2f53f02FC9085EbD6B")
	testDigest    = common.HexToHash("0x112782ff5a98e1dc87d1eb49f1d499e5b065139bd000edbd7a80791598f622a4")
	testPrefix    = [crypto.SaltPrefixLen]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
)

func testConfig(t *testing.T, p string) *types.WorkerConfig {
	t.Helper()
	compiled, err := pattern.Compile(p)
	require.NoError(t, err)
	return &types.WorkerConfig{
		Space: types.SearchSpace{
			Factory: testFactory,
			Target:  common.Address{},
			Pattern: compiled,
		},
		Submitter:    testSubmitter,
		InitCodeHash: testDigest,
		Lanes:        1,
		ReportLane:   -1,
	}
}

type memorySink struct {
	mu   sync.Mutex
	hits []types.Hit
}

func (m *memorySink) Record(_ context.Context, h types.Hit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = append(m.hits, h)
	return nil
}

func TestNewWorker(t *testing.T) {
	config := testConfig(t, "0x0000000000000000000000000000000000000000")
	config.Lanes = 4
	config.ReportLane = 2

	w := NewWorker(0, config, testPrefix, sink.Discard, logger.Discard())
	require.NotNil(t, w)
	assert.Equal(t, config, w.config)
	assert.Nil(t, w.rate)
	assert.Equal(t, testPrefix, w.Prefix())
	assert.False(t, w.checksum)
	assert.True(t, NewWorker(0, testConfig(t, "0x2000000000000000000000000000000000000000"), testPrefix, sink.Discard, logger.Discard()).checksum)

	salt := w.input.Salt()
	assert.Equal(t, testSubmitter[:], salt[:20])
	assert.Equal(t, testPrefix[:], salt[20:26])

	reporting := NewWorker(2, config, testPrefix, sink.Discard, logger.Discard())
	assert.NotNil(t, reporting.rate)

	config.ReportLane = -1
	assert.Nil(t, NewWorker(0, config, testPrefix, sink.Discard, logger.Discard()).rate)
}

func TestWorkerRunFindsMatch(t *testing.T) {
	// first two nibbles must be zero: about one candidate in 256
	config := testConfig(t, "0x1100000000000000000000000000000000000000")
	w := NewWorker(0, config, testPrefix, sink.Discard, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := w.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, byte(0), result.Address[0])
	assert.Equal(t, testSubmitter, result.Submitter)
	assert.Equal(t, testSubmitter[:], result.Salt[:20])
	assert.Equal(t, testPrefix[:], result.Salt[20:26])
	assert.Equal(t, result.Attempts, w.Attempts())
	assert.Equal(t, crypto.DeriveAddress(testFactory, result.Salt, testDigest), result.Address)
	assert.True(t, config.Space.Accepts(result.Address))
}

func TestWorkerRunCancelled(t *testing.T) {
	// unsatisfiable: code a at the first nibble never passes
	config := testConfig(t, "0xa000000000000000000000000000000000000000")
	w := NewWorker(0, config, testPrefix, sink.Discard, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		result, err := w.Run(ctx)
		assert.Nil(t, result)
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("lane did not stop after cancellation")
	}
	assert.Greater(t, w.Attempts(), int64(0))
}

func TestWorkerNonceExhausted(t *testing.T) {
	config := testConfig(t, "0xa000000000000000000000000000000000000000")
	w := NewWorker(3, config, testPrefix, sink.Discard, logger.Discard())
	w.nonce = crypto.MaxNonce - 2

	_, err := w.Run(context.Background())
	require.ErrorIs(t, err, ErrNonceExhausted)
	assert.Equal(t, int64(2), w.Attempts())
}

// The lane's prescreen and checksum path agrees with the reference matcher.
func TestWorkerMatchesAgreesWithReference(t *testing.T) {
	patterns := []string{
		"0x2000000000000000000000000000000000000000",
		"0x6e00000000000000000000000000000000000000",
		"0x0c0000000000000000000000000000000000000f",
		"0x9d00000000000000000000000000000000000000",
		"0x3000000000000000000000000000000000000000",
		// no case predicates, the screen alone decides
		"0x5a00000000000000000000000000000000000000",
		"0x4b00000000000000000000000000000000000000",
	}
	for _, p := range patterns {
		config := testConfig(t, p)
		config.Space.Target = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
		w := NewWorker(0, config, testPrefix, sink.Discard, logger.Discard())

		var accepted int
		for i := 0; i < 2000; i++ {
			got, err := w.step(context.Background())
			require.NoError(t, err)
			want := config.Space.Accepts(w.addr)
			require.Equal(t, want, got, "pattern %s address %s", p, w.addr.Hex())
			if got {
				accepted++
			}
		}
		assert.Greater(t, accepted, 0, p)
	}
}

func TestWorkerRecord(t *testing.T) {
	config := testConfig(t, "0x0000000000000000000000000000000000000000")
	mem := &memorySink{}
	w := NewWorker(5, config, testPrefix, mem, logger.Discard())
	w.nonce = 42
	w.addr = common.HexToAddress("0x0000001010101010101010101010101010101010")

	w.record(context.Background(), 3, 3)
	require.Len(t, mem.hits, 1)
	hit := mem.hits[0]
	assert.Equal(t, uint64(42), hit.Nonce)
	assert.Equal(t, 5, hit.Lane)
	assert.Equal(t, "0x000000006b9b8C1aC1392B2f53f02FC9085EbD6Bdeadbeef000100000000002a => "+
		"0x0000001010101010101010101010101010101010 (3 & 3: 1)", hit.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.record(ctx, 3, 3)
	assert.Len(t, mem.hits, 1, "a cancelled lane must not write")
}

func TestWorkerRecordErrorIsLogged(t *testing.T) {
	config := testConfig(t, "0x0000000000000000000000000000000000000000")
	var buf bytes.Buffer
	failing := sink.RecorderFunc(func(context.Context, types.Hit) error { return sink.ErrClosed })
	w := NewWorker(1, config, testPrefix, failing, logger.NewWriter(&buf))

	w.record(context.Background(), 3, 3)
	assert.Contains(t, buf.String(), "lane 1: record hit: results sink closed")
}

func TestRateReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewRateReporter(1000, 10, logger.NewWriter(&buf))
	start := time.Unix(0, 0)
	r.last = start
	r.now = func() time.Time { return start.Add(time.Second) }

	r.Tick(999)
	assert.Empty(t, buf.String())

	r.Tick(1000)
	assert.Contains(t, buf.String(), "0.01 million hashes (10 KH/s)")
}

func TestRateReporterDefaults(t *testing.T) {
	r := NewRateReporter(0, 0, logger.Discard())
	assert.Equal(t, uint64(DefaultReportEvery), r.every)
	assert.Equal(t, 1, r.lanes)
}
