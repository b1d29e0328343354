// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package near

import (
	"math/big"

	"github.com/pkg/errors"
)

// ParseBalance parses a decimal string into an amount in the smallest
// indivisible currency unit. Negative values are rejected.
func ParseBalance(s string) (*big.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid balance %q", s)
	}
	if b.Sign() < 0 {
		return nil, errors.Errorf("negative balance %q", s)
	}
	return b, nil
}

// FormatBalance renders an amount as a decimal string, which survives
// serialization boundaries without precision loss.
func FormatBalance(b *big.Int) string {
	if b == nil {
		return "0"
	}
	return b.String()
}
