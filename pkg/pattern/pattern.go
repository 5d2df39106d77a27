// Package pattern matches checksummed addresses against a 40 nibble search
// space. Each position of the search space holds one predicate code which
// constrains the candidate nibble at that position, either against the
// target address or against other nibbles of the candidate.
package pattern

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Length is the number of nibbles in an address and therefore in a pattern.
const Length = 2 * common.AddressLength

// ErrInvalidPattern is returned when a pattern has the wrong length or holds a
// code outside 0-9a-f.
var ErrInvalidPattern = errors.New("invalid pattern")

// Predicate is the constraint applied to a single nibble.
type Predicate uint8

const (
	Any            Predicate = iota // 0: don't care
	Equal                           // 1: equals target, case-insensitive
	EqualUpper                      // 2: equals target and is upper-case
	EqualLower                      // 3: equals target and is lower-case
	Less                            // 4: below target, case-insensitive
	Greater                         // 5: above target, case-insensitive
	LessUpper                       // 6: below target, upper-case or digit
	GreaterUpper                    // 7: above target, upper-case or digit
	LessLower                       // 8: below target, lower-case or digit
	GreaterLower                    // 9: above target, lower-case or digit
	SamePrior                       // a: equals preceding nibble, case-insensitive
	SameFirst                       // b: equals first nibble, case-insensitive
	SamePriorExact                  // c: equals preceding nibble, case-sensitive
	SameFirstExact                  // d: equals first nibble, case-sensitive
	NotUpper                        // e: not an upper-case character
	NotLower                        // f: not a lower-case character

	// Invalid marks a code outside the alphabet. It fails wherever it appears.
	Invalid Predicate = 0xff
)

// Pattern is a compiled search space, one predicate per nibble, most
// significant nibble first.
type Pattern [Length]Predicate

// Parse decodes s into a Pattern without rejecting unknown codes; those
// become Invalid and never match. The 0x prefix is optional. A string of the
// wrong length yields a pattern that matches nothing.
func Parse(s string) Pattern {
	var p Pattern
	s = trimHexPrefix(s)
	for i := range p {
		if len(s) != Length {
			p[i] = Invalid
			continue
		}
		p[i] = decodeCode(s[i])
	}
	return p
}

// Compile decodes s and rejects it if it is not a valid search space.
func Compile(s string) (Pattern, error) {
	raw := trimHexPrefix(s)
	if len(raw) != Length {
		return Pattern{}, fmt.Errorf("%w: got %d codes, want %d", ErrInvalidPattern, len(raw), Length)
	}
	p := Parse(raw)
	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

// Validate reports the first position holding an Invalid predicate.
func (p Pattern) Validate() error {
	for i, c := range p {
		if c > NotLower {
			return fmt.Errorf("%w: unknown code at position %d", ErrInvalidPattern, i)
		}
	}
	return nil
}

// String renders the pattern as 0x-prefixed codes; invalid positions print
// as '?'.
func (p Pattern) String() string {
	const codes = "0123456789abcdef"
	var b strings.Builder
	b.Grow(2 + Length)
	b.WriteString("0x")
	for _, c := range p {
		if c > NotLower {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(codes[c])
	}
	return b.String()
}

// Match reports whether candidate satisfies the pattern relative to target.
// Case is taken from the checksum encoding of candidate.
func (p Pattern) Match(candidate, target common.Address) bool {
	var cased, tgt [Length]byte
	checksumHex(&cased, candidate)
	lowerHex(&tgt, target)
	return p.MatchHex(&cased, &tgt)
}

// MatchHex is Match on pre-encoded nibbles: cased must be the checksum
// encoding of the candidate and target must be lower-case.
func (p Pattern) MatchHex(cased, target *[Length]byte) bool {
	first := cased[0]
	for i, code := range p {
		if code > NotLower {
			return false
		}
		n := nibble{c: cased[i], t: target[i], first: first, pos: i}
		if i > 0 {
			n.prior = cased[i-1]
		}
		pr := &predicates[code]
		if pr.fold != nil && !pr.fold(n.lower()) {
			return false
		}
		if pr.cased != nil && !pr.cased(n) {
			return false
		}
	}
	return true
}

// Prescreen evaluates only the case-insensitive half of every predicate on a
// lower-case candidate. It never rejects an address that Match would accept,
// so callers can skip checksum hashing for most candidates.
func (p Pattern) Prescreen(lower, target *[Length]byte) bool {
	first := lower[0]
	for i, code := range p {
		if code > NotLower {
			return false
		}
		fold := predicates[code].fold
		if fold == nil {
			continue
		}
		n := nibble{c: lower[i], t: target[i], first: first, pos: i}
		if i > 0 {
			n.prior = lower[i-1]
		}
		if !fold(n) {
			return false
		}
	}
	return true
}

// CaseSensitive reports whether any position depends on checksum casing.
func (p Pattern) CaseSensitive() bool {
	for _, code := range p {
		if code <= NotLower && predicates[code].cased != nil {
			return true
		}
	}
	return false
}

// Matches is the string form of Match used for fixed vectors and the CLI.
// Malformed addresses never match.
func Matches(candidate, pattern, target string) bool {
	c, ok := parseAddress(candidate)
	if !ok {
		return false
	}
	t, ok := parseAddress(target)
	if !ok {
		return false
	}
	return Parse(pattern).Match(c, t)
}

func parseAddress(s string) (common.Address, bool) {
	raw := trimHexPrefix(s)
	if len(raw) != Length {
		return common.Address{}, false
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return common.Address{}, false
	}
	return common.BytesToAddress(b), true
}

func trimHexPrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

func decodeCode(c byte) Predicate {
	switch {
	case c >= '0' && c <= '9':
		return Predicate(c - '0')
	case c >= 'a' && c <= 'f':
		return Predicate(c-'a') + SamePrior
	}
	return Invalid
}
