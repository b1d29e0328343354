// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/pkg/errors"

// RoleModel selects which role model the instance runs.
// The two models observed in the contract's history are incompatible call
// shapes, so an instance commits to one at genesis.
type RoleModel string

const (
	// OwnerApproves - the owner account approves bonuses, the staker
	// withdraws their own funds.
	OwnerApproves RoleModel = "owner-approves"
	// TrustedAgent - a dedicated agent account approves bonuses and triggers
	// withdrawal on the staker's behalf.
	TrustedAgent RoleModel = "trusted-agent"
)

// BonusMode selects whether the bonus payout requires prior approval.
type BonusMode string

const (
	// BonusGated pays the bonus only if the entry's BonusApproved flag is set.
	BonusGated BonusMode = "gated"
	// BonusUnconditional pays the bonus whenever an entry exists.
	BonusUnconditional BonusMode = "unconditional"
)

// Policy is the construction-time configuration of a contract instance,
// written into state at genesis and immutable afterwards.
type Policy struct {
	Model RoleModel `json:"model"`
	Bonus BonusMode `json:"bonus"`
}

// Validate checks the policy holds known values.
func (p Policy) Validate() error {
	switch p.Model {
	case OwnerApproves, TrustedAgent:
	default:
		return errors.Errorf("unknown role model %q", p.Model)
	}
	switch p.Bonus {
	case BonusGated, BonusUnconditional:
	default:
		return errors.Errorf("unknown bonus mode %q", p.Bonus)
	}
	return nil
}

// approverRole returns the role designated to approve bonuses.
func (p Policy) approverRole() Role {
	if p.Model == TrustedAgent {
		return RoleAgent
	}
	return RoleOwner
}
