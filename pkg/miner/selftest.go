package miner

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/reward"
)

// ErrSelfTest is returned when a known-answer vector fails at start-up.
var ErrSelfTest = errors.New("self-test failed")

type selfTest struct {
	name  string
	check func() bool
}

// Known-answer vectors checked before any lane starts.
var selfTests = []selfTest{
	{"matcher accepts known match", func() bool {
		return pattern.Matches(
			"0x003450089012345678901234567890123A56b89A",
			"0x0011100100111111111111111111111111111001",
			"0x123456789012345678901234567890123a56B89a",
		)
	}},
	{"matcher rejects known mismatch", func() bool {
		return !pattern.Matches(
			"0x003450089012345678901234567890123A56b89A",
			"0x0011100100111111111111111111111111111001",
			"0x123456789012345678901234567890123a56B89b",
		)
	}},
	{"matcher rejects unknown code", func() bool {
		return !pattern.Matches(
			"0x003450089012345678901234567890123A56b89A",
			"0x0011100100111111111111111111111111111g01",
			"0x123456789012345678901234567890123a56B89a",
		)
	}},
	{"filter accepts three leading zero bytes", func() bool {
		return reward.LikelyRewarding(common.HexToAddress("0x0000001010101010101010101010101010101010"))
	}},
	{"scorer counts three leading zero bytes", func() bool {
		s := reward.ScoreOf(common.HexToAddress("0x0000001010101010101010101010101010101010"))
		return s.String() == "3 & 3: 1"
	}},
	{"scorer pays the maximum for the null address", func() bool {
		leading, total := reward.ZeroBytes(common.Address{})
		return leading == 20 && total == 20 && reward.Reward(leading, total).Eq(reward.Max())
	}},
	{"deriver matches the CREATE2 vector", func() bool {
		got := crypto.DeriveAddress(common.Address{}, [32]byte{}, crypto.InitCodeDigest([]byte{0x00}))
		return got.Hex() == "0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38"
	}},
	{"hot path agrees with the deriver", func() bool {
		var hashBuf [32]byte
		var addr common.Address
		in := crypto.NewCreate2Input(common.Address{}, crypto.InitCodeDigest([]byte{0x00}))
		crypto.Create2AddressInto(crypto.NewHasher(), in, hashBuf[:], addr[:])
		return addr == common.HexToAddress("0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38")
	}},
}

// SelfTest runs every known-answer vector and returns the first failure.
func SelfTest() error {
	return runSelfTests(selfTests)
}

func runSelfTests(tests []selfTest) error {
	for _, st := range tests {
		if !st.check() {
			return fmt.Errorf("%w: %s", ErrSelfTest, st.name)
		}
	}
	return nil
}
