// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package near

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Bytes32 array of 32 bytes, used as contract storage key.
type Bytes32 [32]byte

func (b32 Bytes32) String() string {
	return "0x" + hex.EncodeToString(b32[:])
}

// Bytes returns byte slice form of Bytes32.
func (b32 Bytes32) Bytes() []byte {
	return b32[:]
}

// IsZero returns if Bytes32 has all zero bytes.
func (b32 Bytes32) IsZero() bool {
	return b32 == Bytes32{}
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 legal length, b will be cropped (from the left).
// If b is smaller, b will be aligned to the right of the Bytes32.
func BytesToBytes32(b []byte) Bytes32 {
	var b32 Bytes32
	if len(b) > len(b32) {
		b = b[len(b)-len(b32):]
	}
	copy(b32[len(b32)-len(b):], b)
	return b32
}

// Blake2b computes blake2b-256 checksum for given data.
func Blake2b(data ...[]byte) (b32 Bytes32) {
	hash, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, b := range data {
		hash.Write(b)
	}
	hash.Sum(b32[:0])
	return
}
