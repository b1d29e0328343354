// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package near

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountID(t *testing.T) {
	valid := []string{
		"alice.testnet",
		"stake-bonus-js.think2earn.near",
		"ok",
		"bob_1.near",
		"1234567890",
	}
	for _, s := range valid {
		id, err := ParseAccountID(s)
		assert.NoError(t, err, s)
		assert.Equal(t, s, id.String())
	}

	invalid := []string{
		"",
		"a",
		"Alice.testnet",
		"double..dot",
		".leading",
		"trailing.",
		"under_.score",
		"spa ce",
		strings.Repeat("x", MaxAccountIDLen+1),
	}
	for _, s := range invalid {
		_, err := ParseAccountID(s)
		assert.Error(t, err, s)
	}
}

func TestBytesToBytes32(t *testing.T) {
	assert.True(t, BytesToBytes32(nil).IsZero())
	assert.Equal(t, BytesToBytes32([]byte{1}), BytesToBytes32([]byte{0, 1}))
	assert.False(t, Blake2b([]byte("staker")).IsZero())
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}

func TestParseBalance(t *testing.T) {
	b, err := ParseBalance("1000000")
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000000), b)
	assert.Equal(t, "1000000", FormatBalance(b))
	assert.Equal(t, "0", FormatBalance(nil))

	for _, s := range []string{"", "-1", "1.5", "0x10", "abc"} {
		_, err := ParseBalance(s)
		assert.Error(t, err, s)
	}
}
