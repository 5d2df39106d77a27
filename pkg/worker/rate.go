package worker

import (
	"time"

	"github.com/screa/pr000xy-miner/internal/logger"
)

// DefaultReportEvery is the number of nonces between rate reports.
const DefaultReportEvery = 100000

// RateReporter estimates the campaign hash rate from a single lane, assuming
// every lane runs at about the same speed.
type RateReporter struct {
	every  uint64
	lanes  int
	logger *logger.Logger
	last   time.Time
	now    func() time.Time
}

// NewRateReporter reports every `every` nonces, scaling by lanes.
func NewRateReporter(every uint64, lanes int, log *logger.Logger) *RateReporter {
	if every == 0 {
		every = DefaultReportEvery
	}
	if lanes < 1 {
		lanes = 1
	}
	return &RateReporter{
		every:  every,
		lanes:  lanes,
		logger: log,
		last:   time.Now(),
		now:    time.Now,
	}
}

// Tick is called with the lane's nonce after each candidate.
func (r *RateReporter) Tick(nonce uint64) {
	if nonce%r.every != 0 {
		return
	}
	now := r.now()
	elapsed := now.Sub(r.last)
	r.last = now
	if elapsed <= 0 {
		return
	}
	lanes := uint64(r.lanes)
	rate := float64(r.every*lanes) / elapsed.Seconds()
	r.logger.Printf("%g million hashes (%d KH/s)", float64(nonce*lanes)/1e6, int64(rate/1000))
}
