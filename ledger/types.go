// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/rainbowpuffpuff/stakebonus/near"
)

// StakerInfo is one staker's commitment. An entry only exists while
// Amount > 0; withdrawal deletes it entirely.
type StakerInfo struct {
	Amount        *big.Int        // total currently committed, in the smallest currency unit
	BonusApproved bool            // false until an authorized approve_bonus call
	Prev          near.AccountID  // doubly linked list
	Next          near.AccountID  // doubly linked list
}

// IsEmpty returns whether the entry can be treated as empty.
func (i *StakerInfo) IsEmpty() bool {
	return i.Amount == nil || i.Amount.Sign() == 0
}

// Snapshot is the single serialized record of a contract instance.
// All amounts are decimal strings to survive serialization boundaries.
type Snapshot struct {
	OwnerID           near.AccountID    `json:"ownerId"`
	AgentID           near.AccountID    `json:"agentId"`
	Policy            Policy            `json:"policy"`
	RewardPoolBalance string            `json:"rewardPoolBalance"`
	Stakers           []SnapshotStaker  `json:"stakers"`
}

// SnapshotStaker is one staker entry of a Snapshot.
type SnapshotStaker struct {
	AccountID     near.AccountID `json:"accountId"`
	Amount        string         `json:"amount"`
	BonusApproved bool           `json:"bonusApproved"`
}
