// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestTerminalHandlerBigValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTerminalHandlerWithLevel(&buf, slog.LevelInfo, false))

	logger.Info("withdrew stake",
		"staker", "alice.testnet",
		"amount", big.NewInt(1100000),
		"pool", uint256.NewInt(100200),
	)

	out := buf.String()
	assert.Contains(t, out, "withdrew stake")
	assert.Contains(t, out, "staker=alice.testnet")
	assert.Contains(t, out, "amount=1100000")
	assert.Contains(t, out, "pool=100200")
	assert.True(t, strings.HasPrefix(out, "INFO "))
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTerminalHandlerWithLevel(&buf, slog.LevelWarn, false))

	logger.Info("hidden")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestSwapHandler(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewLogfmtHandlerWithLevel(&buf, slog.LevelDebug))
	defer SetDefault(NewLogfmtHandlerWithLevel(&buf, slog.LevelInfo))

	// the pre-existing logger picks up the swapped handler
	logger.Debug("after swap")
	assert.Contains(t, buf.String(), "after swap")
	assert.Contains(t, buf.String(), "pkg=test")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, slog.LevelDebug, FromLegacyLevel(4))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
}
