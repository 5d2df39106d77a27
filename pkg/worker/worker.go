package worker

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"hash"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/internal/logger"
	"github.com/screa/pr000xy-miner/pkg/reward"
	"github.com/screa/pr000xy-miner/pkg/sink"
	"github.com/screa/pr000xy-miner/pkg/types"
)

// ErrNonceExhausted is returned when a lane has tried every six byte nonce
// under its prefix.
var ErrNonceExhausted = errors.New("nonce space exhausted")

// Worker is one search lane. It owns its salt prefix, nonce counter and
// scratch buffers; nothing in it is shared with other lanes except the
// read-only campaign and the sink.
type Worker struct {
	id       int
	config   *types.WorkerConfig
	sink     sink.Recorder
	logger   *logger.Logger
	attempts atomic.Int64
	rate     *RateReporter

	prefix   [crypto.SaltPrefixLen]byte
	nonce    uint64
	checksum bool // pattern reads checksum casing

	// Pre-allocated buffers for performance
	input   *crypto.Create2Input
	hasher  hash.Hash
	hashBuf [32]byte
	addr    common.Address
	lower   [crypto.HexAddressLen]byte
	cased   [crypto.HexAddressLen]byte
	target  [crypto.HexAddressLen]byte
}

// NewWorker creates a lane with the given salt prefix. The rate reporter is
// attached only to the lane named by config.ReportLane.
func NewWorker(id int, config *types.WorkerConfig, prefix [crypto.SaltPrefixLen]byte, rec sink.Recorder, log *logger.Logger) *Worker {
	w := &Worker{
		id:     id,
		config: config,
		sink:   rec,
		logger: log,
		prefix:   prefix,
		checksum: config.Space.Pattern.CaseSensitive(),
		input:    crypto.NewCreate2Input(config.Space.Factory, config.InitCodeHash),
		hasher:   crypto.NewHasher(),
	}

	var salt [32]byte
	copy(salt[:crypto.SubmitterLen], config.Submitter[:])
	copy(salt[crypto.SubmitterLen:], prefix[:])
	w.input.SetSalt(salt)
	crypto.LowerHexInto(&w.target, config.Space.Target[:])

	if config.ReportLane >= 0 && config.ReportLane == id {
		w.rate = NewRateReporter(config.ReportEvery, config.Lanes, log)
	}
	return w
}

// RandomPrefix draws a fresh salt prefix from crypto/rand.
func RandomPrefix() ([crypto.SaltPrefixLen]byte, error) {
	var p [crypto.SaltPrefixLen]byte
	if _, err := rand.Read(p[:]); err != nil {
		return p, fmt.Errorf("draw salt prefix: %w", err)
	}
	return p, nil
}

// ID returns the lane index.
func (w *Worker) ID() int {
	return w.id
}

// Prefix returns the lane's salt prefix.
func (w *Worker) Prefix() [crypto.SaltPrefixLen]byte {
	return w.prefix
}

// Attempts returns the number of candidates this lane has derived.
func (w *Worker) Attempts() int64 {
	return w.attempts.Load()
}

// Run searches until a candidate satisfies the search space or ctx is
// cancelled. A cancelled lane returns ctx.Err() and never a result.
func (w *Worker) Run(ctx context.Context) (*types.Result, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		found, err := w.step(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return w.result(), nil
		}
	}
}

// step derives and evaluates the next candidate.
func (w *Worker) step(ctx context.Context) (bool, error) {
	if w.nonce >= crypto.MaxNonce {
		return false, fmt.Errorf("lane %d: %w", w.id, ErrNonceExhausted)
	}
	w.nonce++
	w.input.SetNonce(w.nonce)
	crypto.Create2AddressInto(w.hasher, w.input, w.hashBuf[:], w.addr[:])
	w.attempts.Add(1)

	if leading, total := reward.ZeroBytes(w.addr); reward.Likely(leading, total) {
		w.record(ctx, leading, total)
	}

	if w.rate != nil {
		w.rate.Tick(w.nonce)
	}

	return w.matches(), nil
}

// matches runs the cheap case-insensitive screen first and only computes the
// checksum casing when the candidate survives it. Without case predicates the
// screen is the whole match.
func (w *Worker) matches() bool {
	crypto.LowerHexInto(&w.lower, w.addr[:])
	p := &w.config.Space.Pattern
	if !p.Prescreen(&w.lower, &w.target) {
		return false
	}
	if !w.checksum {
		return true
	}
	crypto.ChecksumInto(w.hasher, &w.lower, &w.cased, w.hashBuf[:])
	return p.MatchHex(&w.cased, &w.target)
}

func (w *Worker) record(ctx context.Context, leading, total int) {
	if ctx.Err() != nil {
		return
	}
	hit := types.Hit{
		Submitter: w.config.Submitter,
		Prefix:    w.prefix,
		Nonce:     w.nonce,
		Address:   w.addr,
		Score: reward.Score{
			Leading: leading,
			Total:   total,
			Reward:  reward.Reward(leading, total),
		},
		Lane: w.id,
	}
	if err := w.sink.Record(ctx, hit); err != nil && ctx.Err() == nil {
		w.logger.Printf("lane %d: record hit: %v", w.id, err)
	}
}

func (w *Worker) result() *types.Result {
	return &types.Result{
		Submitter: w.config.Submitter,
		Address:   w.addr,
		Salt:      w.input.Salt(),
		Score:     reward.ScoreOf(w.addr),
		Lane:      w.id,
		Attempts:  w.attempts.Load(),
	}
}
