// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/rainbowpuffpuff/stakebonus/near"

// Role is the identity class a handler requires of its caller.
type Role uint8

const (
	// RoleOwner requires the caller to equal the instance owner.
	RoleOwner Role = iota
	// RoleAgent requires the caller to equal the current agent.
	RoleAgent
	// RoleSelfStaker requires the caller to equal the staker the call targets.
	RoleSelfStaker
)

// guard decides whether a caller holds a required role.
// Comparison is exact-string identity equality; it has no side effects.
type guard struct {
	storage *storage
}

// authorize reports whether caller holds the required role.
// target is only consulted for RoleSelfStaker.
func (g *guard) authorize(caller near.AccountID, role Role, target near.AccountID) (bool, error) {
	if caller.IsZero() {
		return false, nil
	}
	switch role {
	case RoleOwner:
		owner, err := g.storage.getAccount(slotOwner)
		if err != nil {
			return false, err
		}
		return caller == owner, nil
	case RoleAgent:
		agent, err := g.storage.getAccount(slotAgent)
		if err != nil {
			return false, err
		}
		return caller == agent, nil
	case RoleSelfStaker:
		return caller == target, nil
	}
	return false, nil
}
