// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/lvldb"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
	"github.com/rainbowpuffpuff/stakebonus/xenv"
)

var (
	owner = near.AccountID("owner.testnet")
	agent = near.AccountID("agent.testnet")
	alice = near.AccountID("alice.testnet")
)

func newTestRuntime(t *testing.T, fn TransferFunc) (*Runtime, *Dispatcher) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	stater := state.NewStater(db)
	st := stater.NewState()
	_, err = ledger.Init(st, &ledger.InitConfig{
		Owner:  owner,
		Agent:  agent,
		Policy: ledger.Policy{Model: ledger.TrustedAgent, Bonus: ledger.BonusGated},
	})
	require.NoError(t, err)
	require.NoError(t, st.Stage().Commit())

	dispatcher := NewDispatcher(fn)
	rt, err := New(stater, dispatcher)
	require.NoError(t, err)
	return rt, dispatcher
}

func TestExecuteCommits(t *testing.T) {
	bank := NewBank()
	rt, dispatcher := newTestRuntime(t, bank.Apply)

	_, err := rt.Execute(&Call{Method: "stake", Caller: alice, Deposit: big.NewInt(1000)})
	require.NoError(t, err)

	l, err := rt.NewLedger()
	require.NoError(t, err)
	info, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	require.NotNil(t, info, "committed stake must be visible to later calls")
	assert.Equal(t, big.NewInt(1000), info.Amount)

	require.NoError(t, dispatcher.Stop())
	assert.Equal(t, big.NewInt(0), bank.BalanceOf(alice))
}

func TestExecuteAllOrNothing(t *testing.T) {
	bank := NewBank()
	rt, dispatcher := newTestRuntime(t, bank.Apply)
	defer dispatcher.Stop()

	_, err := rt.Execute(&Call{Method: "stake", Caller: alice, Deposit: big.NewInt(1000)})
	require.NoError(t, err)

	// bonus approved but pool empty, the withdraw must fail and change nothing
	_, err = rt.Execute(&Call{Method: "approve_bonus", Caller: agent, Args: Args{StakerID: alice}})
	require.NoError(t, err)
	_, err = rt.Execute(&Call{Method: "withdraw", Caller: agent, Args: Args{StakerID: alice}})
	assert.True(t, ledger.IsInsufficientFunds(err))

	l, err := rt.NewLedger()
	require.NoError(t, err)
	info, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	require.NotNil(t, info, "failed call must not delete the entry")
	assert.Equal(t, big.NewInt(1000), info.Amount)
	assert.True(t, info.BonusApproved)
}

func TestWithdrawDispatchesTransfer(t *testing.T) {
	bank := NewBank()
	rt, dispatcher := newTestRuntime(t, bank.Apply)

	_, err := rt.Execute(&Call{Method: "deposit_reward_funds", Caller: owner, Deposit: big.NewInt(200)})
	require.NoError(t, err)
	_, err = rt.Execute(&Call{Method: "stake", Caller: alice, Deposit: big.NewInt(1000)})
	require.NoError(t, err)
	_, err = rt.Execute(&Call{Method: "approve_bonus", Caller: agent, Args: Args{StakerID: alice}})
	require.NoError(t, err)

	out, err := rt.Execute(&Call{Method: "withdraw", Caller: agent, Args: Args{StakerID: alice}})
	require.NoError(t, err)
	require.Len(t, out.Transfers, 1)
	assert.Equal(t, xenv.Transfer{To: alice, Amount: big.NewInt(1100)}, out.Transfers[0])

	require.NoError(t, dispatcher.Stop())
	assert.Equal(t, big.NewInt(1100), bank.BalanceOf(alice))

	l, err := rt.NewLedger()
	require.NoError(t, err)
	info, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	assert.Nil(t, info)
	pool, err := l.GetRewardPoolBalance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), pool)
}

func TestTransferFailureIsNotCompensated(t *testing.T) {
	rt, dispatcher := newTestRuntime(t, func(xenv.Transfer) error {
		return errors.New("receiver rejected")
	})

	_, err := rt.Execute(&Call{Method: "stake", Caller: alice, Deposit: big.NewInt(500)})
	require.NoError(t, err)
	_, err = rt.Execute(&Call{Method: "withdraw", Caller: agent, Args: Args{StakerID: alice}})
	require.NoError(t, err)
	require.NoError(t, dispatcher.Stop())

	// the entry stays deleted even though delivery failed
	l, err := rt.NewLedger()
	require.NoError(t, err)
	info, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestExecuteRejectsBadCalls(t *testing.T) {
	rt, dispatcher := newTestRuntime(t, NewBank().Apply)
	defer dispatcher.Stop()

	_, err := rt.Execute(&Call{Method: "mint", Caller: alice})
	assert.True(t, ledger.IsValidation(err), "unknown method")

	_, err = rt.Execute(&Call{Method: "stake", Caller: ""})
	assert.True(t, ledger.IsValidation(err), "missing caller")

	_, err = rt.Execute(&Call{Method: "approve_bonus", Caller: agent, Deposit: big.NewInt(1), Args: Args{StakerID: alice}})
	assert.True(t, ledger.IsValidation(err), "deposit on non-payable method")

	_, err = rt.Execute(&Call{Method: "withdraw", Caller: alice, Args: Args{StakerID: alice}})
	assert.True(t, ledger.IsAuthorization(err), "self withdraw denied under agent operation")
}
