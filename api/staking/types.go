// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/xenv"
)

// CallArgs mirrors the contract's argument object, hence the snake_case keys.
type CallArgs struct {
	StakerID   string `json:"staker_id,omitempty"`
	NewAgentID string `json:"new_agent_id,omitempty"`
}

// CallRequest is one attributed call submitted over HTTP. The node trusts the
// declared caller; authenticating callers is the deployment's concern.
type CallRequest struct {
	Caller  string                `json:"caller"`
	Deposit *math.HexOrDecimal256 `json:"deposit,omitempty"`
	Args    CallArgs              `json:"args"`
}

// Transfer is one outbound transfer scheduled by a committed call.
type Transfer struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// CallResponse reports the outcome of a committed call.
type CallResponse struct {
	Transfers []Transfer `json:"transfers"`
}

func convertTransfers(transfers []xenv.Transfer) []Transfer {
	converted := make([]Transfer, 0, len(transfers))
	for _, t := range transfers {
		converted = append(converted, Transfer{
			To:     string(t.To),
			Amount: t.Amount.String(),
		})
	}
	return converted
}

// StakeInfo is the readable form of one staker entry.
type StakeInfo struct {
	AccountID     string `json:"accountId"`
	Amount        string `json:"amount"`
	BonusApproved bool   `json:"bonusApproved"`
}

// Pool carries the reward pool balance as a decimal string.
type Pool struct {
	RewardPoolBalance string `json:"rewardPoolBalance"`
}

// Roles reports the instance identities and its operating policy.
type Roles struct {
	OwnerID string        `json:"ownerId"`
	AgentID string        `json:"agentId"`
	Policy  ledger.Policy `json:"policy"`
}

// BankBalance is the credited balance of one account at the host bank.
type BankBalance struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

func bigToString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
