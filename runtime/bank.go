// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"sync"

	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/xenv"
)

// Bank is the solo host's account book. It receives dispatched transfers and
// credits the target accounts, which makes the asynchronous leg of a
// withdrawal observable.
type Bank struct {
	mu       sync.Mutex
	balances map[near.AccountID]*big.Int
}

func NewBank() *Bank {
	return &Bank{balances: make(map[near.AccountID]*big.Int)}
}

// Apply credits one transfer. It satisfies TransferFunc.
func (b *Bank) Apply(transfer xenv.Transfer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.balances[transfer.To]
	if !ok {
		balance = new(big.Int)
		b.balances[transfer.To] = balance
	}
	balance.Add(balance, transfer.Amount)
	return nil
}

// BalanceOf returns the credited balance of the given account, zero when the
// account was never credited.
func (b *Bank) BalanceOf(id near.AccountID) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if balance, ok := b.balances[id]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}
