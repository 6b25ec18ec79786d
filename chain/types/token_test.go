package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	for _, s := range []string{"0", "1", "0.001", "1000000.5", "0.000000000000000001"} {
		tk, err := ParseToken(s)
		require.NoError(t, err)
		require.Equal(t, s, tk.String())
	}

	_, err := ParseToken("0.0000000000000000001")
	require.Error(t, err)
}
