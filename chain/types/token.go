package types

import (
	"fmt"
	"math/big"
	"strings"

	fbig "github.com/filecoin-project/go-state-types/big"
)

// TokenPrecision is the number of atto units in one whole token.
const TokenPrecision = 1_000_000_000_000_000_000

type Token fbig.Int

func (f Token) String() string {
	if f.Int == nil {
		return "0"
	}
	r := big.NewRat(1, 1).SetFrac(f.Int, big.NewInt(TokenPrecision))
	if r.Sign() == 0 {
		return "0"
	}
	return strings.TrimRight(strings.TrimRight(r.FloatString(18), "0"), ".")
}

func ParseToken(s string) (Token, error) {
	r, ok := big.NewRat(1, 1).SetString(s)
	if !ok {
		return Token{}, fmt.Errorf("failed to parse %q as a decimal number", s)
	}

	r = r.Mul(r, big.NewRat(TokenPrecision, 1))
	if !r.IsInt() {
		return Token{}, fmt.Errorf("invalid token value: %q", s)
	}

	return Token{Int: r.Num()}, nil
}
