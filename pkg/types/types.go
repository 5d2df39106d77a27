package types

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/reward"
)

// SearchSpace defines which derived addresses are accepted: the factory that
// deploys them and the pattern they must satisfy relative to Target.
type SearchSpace struct {
	Factory common.Address
	Target  common.Address
	Pattern pattern.Pattern
}

// Accepts reports whether addr satisfies the search space.
func (s *SearchSpace) Accepts(addr common.Address) bool {
	return s.Pattern.Match(addr, s.Target)
}

// Result represents a mining result
type Result struct {
	Submitter common.Address
	Address   common.Address
	Salt      [32]byte
	Score     reward.Score
	Lane      int
	Attempts  int64
	Duration  time.Duration
}

// SaltHex returns the salt as 0x-prefixed lower-case hex.
func (r *Result) SaltHex() string {
	return "0x" + hex.EncodeToString(r.Salt[:])
}

// WorkerConfig contains the read-only campaign shared by every lane
type WorkerConfig struct {
	Space        SearchSpace
	Submitter    common.Address
	InitCodeHash common.Hash

	// Lanes is the number of lanes in the campaign, used to extrapolate
	// the rate reported by a single lane.
	Lanes int
	// ReportLane is the lane that reports its hash rate; negative disables.
	ReportLane  int
	ReportEvery uint64
}

// Hit is a candidate that passed the zero byte filter and is written to the
// results log.
type Hit struct {
	Submitter common.Address
	Prefix    [6]byte
	Nonce     uint64
	Address   common.Address
	Score     reward.Score
	Lane      int
}

// String renders the results log line:
// <submitter><prefix hex><nonce hex> => <checksum address> (<leading> & <total>: <reward>)
func (h Hit) String() string {
	return fmt.Sprintf("%s%x%012x => %s (%s)", h.Submitter.Hex(), h.Prefix[:], h.Nonce, h.Address.Hex(), h.Score)
}
