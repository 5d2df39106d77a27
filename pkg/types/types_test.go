package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/reward"
	"github.com/stretchr/testify/assert"
)

func TestHitString(t *testing.T) {
	addr := common.HexToAddress("0x0000001010101010101010101010101010101010")
	h := Hit{
		Submitter: common.HexToAddress("0x000000006b9b8C1aC1392B2f53f02FC9085EbD6B"),
		Prefix:    [6]byte{0x0a, 0x1b, 0x2c, 0x3d, 0x4e, 0x5f},
		Nonce:     0x1f,
		Address:   addr,
		Score:     reward.ScoreOf(addr),
	}

	want := "0x000000006b9b8C1aC1392B2f53f02FC9085EbD6B0a1b2c3d4e5f00000000001f => " +
		"0x0000001010101010101010101010101010101010 (3 & 3: 1)"
	assert.Equal(t, want, h.String())
}

func TestResultSaltHex(t *testing.T) {
	r := Result{Salt: [32]byte{0xab, 31: 0x01}}
	assert.Equal(t, "0xab00000000000000000000000000000000000000000000000000000000000001", r.SaltHex())
}

func TestSearchSpaceAccepts(t *testing.T) {
	s := SearchSpace{
		Target:  common.HexToAddress("0x123456789012345678901234567890123a56B89a"),
		Pattern: pattern.Parse("0x0011100100111111111111111111111111111001"),
	}
	assert.True(t, s.Accepts(common.HexToAddress("0x003450089012345678901234567890123A56b89A")))
	assert.False(t, s.Accepts(common.HexToAddress("0x003460089012345678901234567890123A56b89A")))
}
