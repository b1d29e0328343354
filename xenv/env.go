// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"math/big"

	"github.com/rainbowpuffpuff/stakebonus/near"
)

// Transfer is an outbound value transfer scheduled by a call.
type Transfer struct {
	To     near.AccountID
	Amount *big.Int
}

// Environment carries the host-attributed context of a single call:
// the caller identity, the value attached to the call, and the transfers
// the call schedules. Transfers are dispatched only after the state commit.
type Environment struct {
	caller    near.AccountID
	deposit   *big.Int
	transfers []Transfer
}

// New create a new env.
func New(caller near.AccountID, deposit *big.Int) *Environment {
	if deposit == nil {
		deposit = new(big.Int)
	}
	return &Environment{
		caller:  caller,
		deposit: deposit,
	}
}

// Caller returns the identity the host attributes to the invoking entity.
func (env *Environment) Caller() near.AccountID { return env.caller }

// AttachedDeposit returns the value attached to the call.
func (env *Environment) AttachedDeposit() *big.Int { return new(big.Int).Set(env.deposit) }

// ScheduleTransfer stages an outbound transfer of value.
func (env *Environment) ScheduleTransfer(to near.AccountID, amount *big.Int) {
	env.transfers = append(env.transfers, Transfer{
		To:     to,
		Amount: new(big.Int).Set(amount),
	})
}

// Transfers returns the transfers staged during the call.
func (env *Environment) Transfers() []Transfer {
	return env.transfers
}
