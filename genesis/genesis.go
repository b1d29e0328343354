// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial instance record from a JSON document.
package genesis

import (
	"encoding/json"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

// Doc is the instance record as authored by the operator.
type Doc struct {
	OwnerID    near.AccountID        `json:"ownerId"`
	AgentID    near.AccountID        `json:"agentId"`
	Policy     ledger.Policy         `json:"policy"`
	RewardPool *math.HexOrDecimal256 `json:"rewardPool"`
	Stakers    []Staker              `json:"stakers"`
}

// Staker pre-seeds one commitment.
type Staker struct {
	AccountID     near.AccountID        `json:"accountId"`
	Amount        *math.HexOrDecimal256 `json:"amount"`
	BonusApproved bool                  `json:"bonusApproved"`
}

// Devnet returns the throwaway instance record used when no genesis document
// is given.
func Devnet() *Doc {
	return &Doc{
		OwnerID: "owner.test",
		AgentID: "agent.test",
		Policy:  ledger.Policy{Model: ledger.TrustedAgent, Bonus: ledger.BonusGated},
	}
}

// Load reads and validates a genesis document. Unknown fields are rejected so
// a typoed key cannot silently drop a setting.
func Load(r io.Reader) (*Doc, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var doc Doc
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads a genesis document from the given path.
func LoadFile(path string) (*Doc, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis")
	}
	defer file.Close()
	return Load(file)
}

// Validate checks the document for well-formed account ids and amounts.
// Cross-entry rules, duplicates in particular, are enforced at build time.
func (d *Doc) Validate() error {
	if _, err := near.ParseAccountID(string(d.OwnerID)); err != nil {
		return errors.Wrap(err, "ownerId")
	}
	if _, err := near.ParseAccountID(string(d.AgentID)); err != nil {
		return errors.Wrap(err, "agentId")
	}
	if err := d.Policy.Validate(); err != nil {
		return err
	}
	if d.RewardPool != nil && (*big.Int)(d.RewardPool).Sign() < 0 {
		return errors.New("rewardPool must not be negative")
	}
	for i, staker := range d.Stakers {
		if _, err := near.ParseAccountID(string(staker.AccountID)); err != nil {
			return errors.Wrapf(err, "stakers[%d].accountId", i)
		}
		if staker.Amount == nil || (*big.Int)(staker.Amount).Sign() <= 0 {
			return errors.Errorf("stakers[%d].amount must be positive", i)
		}
	}
	return nil
}

// Build writes the instance record into a fresh state. The caller commits.
func (d *Doc) Build(st *state.State) (*ledger.Ledger, error) {
	cfg := ledger.InitConfig{
		Owner:      d.OwnerID,
		Agent:      d.AgentID,
		Policy:     d.Policy,
		RewardPool: (*big.Int)(d.RewardPool),
	}
	for _, staker := range d.Stakers {
		cfg.Stakers = append(cfg.Stakers, ledger.InitStaker{
			ID:            staker.AccountID,
			Amount:        (*big.Int)(staker.Amount),
			BonusApproved: staker.BonusApproved,
		})
	}
	return ledger.Init(st, &cfg)
}
