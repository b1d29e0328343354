// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package near

import (
	"regexp"

	"github.com/pkg/errors"
)

const (
	// MinAccountIDLen is the shortest valid account identity.
	MinAccountIDLen = 2
	// MaxAccountIDLen is the longest valid account identity.
	MaxAccountIDLen = 64
)

// account identities are dot-separated parts of lowercase alphanumerics,
// where parts may contain single '-' or '_' separators.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// AccountID is the unique string identifying a caller/staker on the host
// ledger platform, e.g. "alice.testnet".
type AccountID string

// ParseAccountID validates s and converts it to an AccountID.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) < MinAccountIDLen || len(s) > MaxAccountIDLen {
		return "", errors.Errorf("invalid account id length %d", len(s))
	}
	if !accountIDPattern.MatchString(s) {
		return "", errors.New("invalid account id")
	}
	return AccountID(s), nil
}

// MustParseAccountID convert string presentation to AccountID or panic.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero returns true if the identity is unset.
func (id AccountID) IsZero() bool {
	return id == ""
}

func (id AccountID) String() string {
	return string(id)
}

// Bytes returns the raw identity bytes.
func (id AccountID) Bytes() []byte {
	return []byte(id)
}
