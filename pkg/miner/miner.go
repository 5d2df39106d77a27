package miner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/screa/pr000xy-miner/internal/config"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/internal/logger"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/reward"
	"github.com/screa/pr000xy-miner/pkg/sink"
	"github.com/screa/pr000xy-miner/pkg/types"
	"github.com/screa/pr000xy-miner/pkg/worker"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAllLanesFailed is returned when every lane stopped with a fault.
	ErrAllLanesFailed = errors.New("all lanes failed")
	// ErrStopped is returned when Stop ends the search before a match.
	ErrStopped = errors.New("mining stopped")
	// ErrUnverified is reported when a lane's result does not survive
	// independent recomputation.
	ErrUnverified = errors.New("result failed verification")
)

// LaneError is a fault raised inside one lane.
type LaneError struct {
	Lane int
	Err  error
}

func (e *LaneError) Error() string {
	return fmt.Sprintf("lane %d: %v", e.Lane, e.Err)
}

func (e *LaneError) Unwrap() error {
	return e.Err
}

type laneFunc func(ctx context.Context, w *worker.Worker) (*types.Result, error)

// Miner coordinates the search lanes
type Miner struct {
	config       *config.Config
	logger       *logger.Logger
	best         *bestTracker
	workerConfig *types.WorkerConfig

	selfTest  func() error
	newPrefix func() ([crypto.SaltPrefixLen]byte, error)
	runLane   laneFunc

	mu      sync.RWMutex
	result  *types.Result
	workers []*worker.Worker
	cancel  context.CancelFunc
	stopped atomic.Bool
	failed  atomic.Int32
	lastErr error
	once    sync.Once
}

// NewMiner validates cfg and prepares the campaign shared by every lane.
// Hits are forwarded to rec.
func NewMiner(cfg *config.Config, log *logger.Logger, rec sink.Recorder) (*Miner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := pattern.Compile(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	factory, err := crypto.ParseAddress(cfg.Factory)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	submitter, err := crypto.ParseAddress(cfg.Submitter)
	if err != nil {
		return nil, fmt.Errorf("submitter: %w", err)
	}
	target, err := crypto.ParseAddress(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	initCodeHash, err := cfg.GetInitCodeHash()
	if err != nil {
		return nil, fmt.Errorf("init code: %w", err)
	}

	workerConfig := &types.WorkerConfig{
		Space: types.SearchSpace{
			Factory: factory,
			Target:  target,
			Pattern: p,
		},
		Submitter:    submitter,
		InitCodeHash: initCodeHash,
		Lanes:        cfg.Workers,
		ReportLane:   cfg.ReportLane,
		ReportEvery:  cfg.ReportEvery,
	}

	return &Miner{
		config:       cfg,
		logger:       log,
		best:         &bestTracker{next: rec},
		workerConfig: workerConfig,
		selfTest:     SelfTest,
		newPrefix:    worker.RandomPrefix,
		runLane:      func(ctx context.Context, w *worker.Worker) (*types.Result, error) { return w.Run(ctx) },
	}, nil
}

// WorkerConfig returns the campaign shared by the lanes.
func (m *Miner) WorkerConfig() *types.WorkerConfig {
	return m.workerConfig
}

// Mine runs the self-tests, starts one goroutine per lane and blocks until a
// lane finds a verified match, every lane has failed, Stop is called or ctx
// is done. All lanes have stopped when Mine returns.
func (m *Miner) Mine(ctx context.Context) (*types.Result, error) {
	if err := m.selfTest(); err != nil {
		return nil, err
	}
	start := time.Now()

	workers := make([]*worker.Worker, m.config.Workers)
	for i := range workers {
		prefix, err := m.newPrefix()
		if err != nil {
			return nil, &LaneError{Lane: i, Err: err}
		}
		workers[i] = worker.NewWorker(i, m.workerConfig, prefix, m.best, m.logger)
		m.logger.Verbosef("lane %d salt prefix: 0x%x", i, prefix[:])
	}

	laneCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.mu.Lock()
	m.workers = workers
	m.cancel = cancel
	m.mu.Unlock()
	if m.stopped.Load() {
		cancel()
	}

	var g errgroup.Group
	for _, w := range workers {
		w := w
		g.Go(func() error {
			m.lane(laneCtx, cancel, w)
			return nil
		})
	}

	// Start periodic logging if verbose mode is enabled
	if m.config.Verbose && m.config.LogInterval > 0 {
		interval := time.Duration(m.config.LogInterval) * time.Second
		g.Go(func() error {
			m.periodicLogger(laneCtx, interval, start)
			return nil
		})
		m.logger.Printf("Mining started with %d workers, logging every %d seconds...",
			m.config.Workers, m.config.LogInterval)
	}

	// Wait for completion
	_ = g.Wait()

	if result := m.Result(); result != nil {
		result.Duration = time.Since(start)
		result.Attempts = m.Attempts()
		m.logger.Printf("found match!\n  salt: %s\n  creates: %s\n  submitter: %s\n  score: %s",
			result.SaltHex(), result.Address.Hex(), result.Submitter.Hex(), result.Score)
		return result, nil
	}

	if int(m.failed.Load()) == len(workers) {
		m.mu.RLock()
		last := m.lastErr
		m.mu.RUnlock()
		return nil, fmt.Errorf("%w: %w", ErrAllLanesFailed, last)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrStopped
}

// lane runs one worker to completion and reports its outcome.
func (m *Miner) lane(ctx context.Context, cancel context.CancelFunc, w *worker.Worker) {
	res, err := m.safeRun(ctx, w)
	if ctx.Err() != nil {
		// cancelled lanes never report, even if they finished a candidate
		return
	}
	if err == nil {
		err = m.verify(res)
	}
	if err != nil {
		m.laneFailed(cancel, &LaneError{Lane: w.ID(), Err: err})
		return
	}

	m.once.Do(func() {
		m.mu.Lock()
		m.result = res
		m.mu.Unlock()
		cancel()
	})
}

func (m *Miner) safeRun(ctx context.Context, w *worker.Worker) (res *types.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return m.runLane(ctx, w)
}

// verify recomputes a lane's result through the reference deriver, matcher
// and scorer.
func (m *Miner) verify(res *types.Result) error {
	if res == nil {
		return fmt.Errorf("%w: lane returned no result", ErrUnverified)
	}
	space := &m.workerConfig.Space
	derived := crypto.DeriveAddress(space.Factory, res.Salt, m.workerConfig.InitCodeHash)
	if derived != res.Address {
		return fmt.Errorf("%w: salt derives %s, lane reported %s", ErrUnverified, derived.Hex(), res.Address.Hex())
	}
	if !space.Accepts(derived) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnverified, derived.Hex(), space.Pattern)
	}
	res.Score = reward.ScoreOf(derived)
	return nil
}

func (m *Miner) laneFailed(cancel context.CancelFunc, err *LaneError) {
	m.logger.Printf("lane %d failed: %v", err.Lane, err.Err)
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	if int(m.failed.Add(1)) == m.config.Workers {
		cancel()
	}
}

// Stop stops the mining process
func (m *Miner) Stop() {
	m.stopped.Store(true)
	m.mu.RLock()
	cancel := m.cancel
	m.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Result returns the winning result, if any.
func (m *Miner) Result() *types.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}

// GetBestHit returns the highest scoring hit recorded so far.
func (m *Miner) GetBestHit() *types.Hit {
	return m.best.Best()
}

// Attempts sums the candidates derived by every lane.
func (m *Miner) Attempts() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, w := range m.workers {
		total += w.Attempts()
	}
	return total
}

// periodicLogger logs mining progress at regular intervals
func (m *Miner) periodicLogger(ctx context.Context, interval time.Duration, start time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			attempts := m.Attempts()
			elapsed := time.Since(start)

			// Calculate rate safely
			rate := 0.0
			if elapsed.Seconds() > 0 {
				rate = float64(attempts) / elapsed.Seconds()
			}

			if best := m.best.Best(); best != nil {
				m.logger.Printf("Progress: %d attempts, %.2f hashes/sec, Best so far: %s",
					attempts, rate, best)
			} else {
				m.logger.Printf("Progress: %d attempts, %.2f hashes/sec, No hits yet",
					attempts, rate)
			}
		case <-ctx.Done():
			return
		}
	}
}
