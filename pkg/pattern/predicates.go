package pattern

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// nibble is the view of one candidate position handed to a predicate.
// c, prior and first are candidate characters; t is the lower-case target
// character at the same position.
type nibble struct {
	c, t, prior, first byte
	pos                int
}

func (n nibble) lower() nibble {
	n.c = toLower(n.c)
	n.prior = toLower(n.prior)
	n.first = toLower(n.first)
	return n
}

// predicate splits a code into its case-insensitive half, which sees
// lower-cased candidate characters, and its case half, which sees the
// checksum characters. Either half may be nil.
type predicate struct {
	fold  func(nibble) bool
	cased func(nibble) bool
}

var predicates = [NotLower + 1]predicate{
	Any:            {},
	Equal:          {fold: equal},
	EqualUpper:     {fold: equal, cased: upper},
	EqualLower:     {fold: equal, cased: notUpper},
	Less:           {fold: less},
	Greater:        {fold: greater},
	LessUpper:      {fold: less, cased: upperOrDigit},
	GreaterUpper:   {fold: greater, cased: upperOrDigit},
	LessLower:      {fold: less, cased: lowerOrDigit},
	GreaterLower:   {fold: greater, cased: lowerOrDigit},
	SamePrior:      {fold: samePrior},
	SameFirst:      {fold: sameFirst},
	SamePriorExact: {fold: samePrior, cased: samePrior},
	SameFirstExact: {fold: sameFirst, cased: sameFirst},
	NotUpper:       {cased: notUpper},
	NotLower:       {cased: notLower},
}

func equal(n nibble) bool   { return n.c == n.t }
func less(n nibble) bool    { return n.c < n.t }
func greater(n nibble) bool { return n.c > n.t }

// The first nibble has no predecessor.
func samePrior(n nibble) bool { return n.pos > 0 && n.c == n.prior }
func sameFirst(n nibble) bool { return n.c == n.first }

func upper(n nibble) bool        { return isUpper(n.c) }
func notUpper(n nibble) bool     { return !isUpper(n.c) }
func notLower(n nibble) bool     { return !isLower(n.c) }
func upperOrDigit(n nibble) bool { return isUpper(n.c) || isDigit(n.c) }
func lowerOrDigit(n nibble) bool { return isLower(n.c) || isDigit(n.c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'F' }
func isLower(c byte) bool { return c >= 'a' && c <= 'f' }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func checksumHex(dst *[Length]byte, addr common.Address) {
	copy(dst[:], addr.Hex()[2:])
}

func lowerHex(dst *[Length]byte, addr common.Address) {
	hex.Encode(dst[:], addr[:])
}
