package crypto

import (
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const (
	// CREATE2 input layout: 0xff (1) + factory (20) + salt (32) + initcodeHash (32) = 85
	Create2PrefixLen = 1 + common.AddressLength
	Create2SaltLen   = 32
	Create2SuffixLen = common.HashLength
	Create2InputLen  = Create2PrefixLen + Create2SaltLen + Create2SuffixLen

	// Salt layout: submitter (20) + random prefix (6) + nonce (6)
	SubmitterLen   = common.AddressLength
	SaltPrefixLen  = 6
	NonceLen       = 6
	SaltPrefixOff  = Create2PrefixLen + SubmitterLen
	NonceOff       = SaltPrefixOff + SaltPrefixLen
	HexAddressLen  = 2 * common.AddressLength
	MaxNonce       = 1<<(8*NonceLen) - 1
	create2Marker  = 0xff
	checksumNibble = 8
)

// Create2Input is the keccak preimage of a CREATE2 address. Only the salt
// changes between candidates of one campaign, so the factory and init code
// digest are written once and the salt bytes are patched in place.
type Create2Input [Create2InputLen]byte

// NewCreate2Input primes the constant parts of the preimage.
func NewCreate2Input(factory common.Address, initCodeHash common.Hash) *Create2Input {
	var in Create2Input
	in[0] = create2Marker
	copy(in[1:Create2PrefixLen], factory[:])
	copy(in[Create2PrefixLen+Create2SaltLen:], initCodeHash[:])
	return &in
}

// SetSalt writes the whole 32-byte salt.
func (in *Create2Input) SetSalt(salt [32]byte) {
	copy(in[Create2PrefixLen:], salt[:])
}

// SetNonce writes the low six bytes of the salt, big-endian.
func (in *Create2Input) SetNonce(nonce uint64) {
	b := in[NonceOff : NonceOff+NonceLen]
	b[0] = byte(nonce >> 40)
	b[1] = byte(nonce >> 32)
	b[2] = byte(nonce >> 24)
	b[3] = byte(nonce >> 16)
	b[4] = byte(nonce >> 8)
	b[5] = byte(nonce)
}

// Salt returns a copy of the salt currently in the preimage.
func (in *Create2Input) Salt() [32]byte {
	var salt [32]byte
	copy(salt[:], in[Create2PrefixLen:Create2PrefixLen+Create2SaltLen])
	return salt
}

// NewHasher returns the legacy keccak-256 used by Ethereum.
func NewHasher() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Create2AddressInto hashes CREATE2 input and writes the 20-byte address into addrBuf.
// Reuses the provided hasher to avoid allocations. hashBuf must be at least 32 bytes,
// addrBuf must be 20 bytes.
func Create2AddressInto(hasher hash.Hash, input *Create2Input, hashBuf, addrBuf []byte) {
	hasher.Reset()
	hasher.Write(input[:])
	sum := hasher.Sum(hashBuf[:0])
	copy(addrBuf, sum[12:32])
}

// DeriveAddress computes the CREATE2 address of initCodeHash deployed by
// factory with salt. It goes through go-ethereum and is used to check
// results produced by the hot path.
func DeriveAddress(factory common.Address, salt [32]byte, initCodeHash common.Hash) common.Address {
	return ethcrypto.CreateAddress2(factory, salt, initCodeHash[:])
}

// InitCodeDigest hashes raw init code. Campaigns hash once and reuse the digest.
func InitCodeDigest(initCode []byte) common.Hash {
	return ethcrypto.Keccak256Hash(initCode)
}

// LowerHexInto writes the lower-case hex of a 20-byte address.
func LowerHexInto(dst *[HexAddressLen]byte, addr []byte) {
	hex.Encode(dst[:], addr[:common.AddressLength])
}

// ChecksumInto applies EIP-55 casing to a lower-case hex address: a letter is
// upper-cased when the matching nibble of keccak256(lower) is 8 or more.
// hashBuf must hold at least 32 bytes.
func ChecksumInto(hasher hash.Hash, lower, dst *[HexAddressLen]byte, hashBuf []byte) {
	hasher.Reset()
	hasher.Write(lower[:])
	sum := hasher.Sum(hashBuf[:0])
	for i, c := range lower {
		n := (sum[i/2] >> uint(4*(1-i%2))) & 0xF
		if c >= 'a' && n >= checksumNibble {
			c -= 'a' - 'A'
		}
		dst[i] = c
	}
}

// ParseAddress decodes a 40 hex character address, with or without 0x.
// Unlike common.HexToAddress it rejects anything that is not exactly an address.
func ParseAddress(s string) (common.Address, error) {
	h := trimHex(s)
	if len(h) != HexAddressLen {
		return common.Address{}, fmt.Errorf("invalid address length: got %d hex chars, want %d", len(h), HexAddressLen)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address hex: %w", err)
	}
	return common.BytesToAddress(b), nil
}

// ParseHash decodes a 64 hex character digest, with or without 0x.
func ParseHash(s string) (common.Hash, error) {
	h := trimHex(s)
	if len(h) != 2*common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid hash length: got %d hex chars, want %d", len(h), 2*common.HashLength)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hash hex: %w", err)
	}
	return common.BytesToHash(b), nil
}

// ParseSalt decodes a 64 hex character salt, with or without 0x.
func ParseSalt(s string) ([32]byte, error) {
	h, err := ParseHash(s)
	if err != nil {
		return [32]byte{}, fmt.Errorf("invalid salt: %w", err)
	}
	return h, nil
}

// DecodeHex decodes hex bytecode, tolerating a 0x prefix and surrounding space.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(trimHex(s))
}

func trimHex(s string) string {
	h := strings.TrimSpace(s)
	if len(h) >= 2 && (h[0:2] == "0x" || h[0:2] == "0X") {
		h = h[2:]
	}
	return h
}
