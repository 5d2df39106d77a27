// Package reward scores addresses by how rare their zero bytes are.
//
// An address earns a reward based on the number of leading zero bytes and
// the total number of zero bytes it contains. Rewards are looked up in a
// fixed sparse table keyed by leading*20+total; combinations that are not in
// the table are worth nothing.
package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AddressLength is the number of bytes scanned for zero bytes.
const AddressLength = common.AddressLength

var (
	rewards = parseTable(table)
	zero    = uint256.NewInt(0)
	maxKey  = Key(AddressLength, AddressLength)
)

func parseTable(src map[int]string) map[int]*uint256.Int {
	out := make(map[int]*uint256.Int, len(src))
	for k, v := range src {
		out[k] = uint256.MustFromDecimal(v)
	}
	return out
}

// Key returns the table key for a (leading, total) pair.
func Key(leading, total int) int {
	return leading*AddressLength + total
}

// ZeroBytes counts the zero bytes of addr. leading is the index of the first
// non-zero byte and total the number of 0x00 bytes. The null address is
// reported as (20, 20).
func ZeroBytes(addr common.Address) (leading, total int) {
	leading = -1
	for i, b := range addr {
		if b == 0 {
			total++
		} else if leading < 0 {
			leading = i
		}
	}
	if leading < 0 {
		leading = AddressLength
	}
	return leading, total
}

// Reward returns the reward for an address with the given zero byte counts.
// The returned value must not be modified.
func Reward(leading, total int) *uint256.Int {
	if r, ok := rewards[Key(leading, total)]; ok {
		return r
	}
	return zero
}

// Max returns the largest reward in the table, paid for the null address.
func Max() *uint256.Int {
	return rewards[maxKey]
}

// LikelyRewarding is the cheap filter applied to every candidate before it is
// scored. It accepts addresses with at least three leading zero bytes, two
// leading zero bytes followed by two more anywhere, or five zero bytes
// anywhere.
func LikelyRewarding(addr common.Address) bool {
	leading, total := ZeroBytes(addr)
	return Likely(leading, total)
}

// Likely applies the LikelyRewarding rule to precomputed counts.
func Likely(leading, total int) bool {
	return leading >= 3 || (leading >= 2 && total >= 4) || total >= 5
}

// Score is the zero byte summary of a single address.
type Score struct {
	Leading int
	Total   int
	Reward  *uint256.Int
}

// ScoreOf computes the score of addr.
func ScoreOf(addr common.Address) Score {
	leading, total := ZeroBytes(addr)
	return Score{
		Leading: leading,
		Total:   total,
		Reward:  Reward(leading, total),
	}
}

// String renders the score as "<leading> & <total>: <reward>".
func (s Score) String() string {
	r := s.Reward
	if r == nil {
		r = zero
	}
	return fmt.Sprintf("%d & %d: %s", s.Leading, s.Total, r.Dec())
}
