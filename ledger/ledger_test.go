// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbowpuffpuff/stakebonus/lvldb"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

var (
	owner = near.AccountID("owner.testnet")
	agent = near.AccountID("agent.testnet")
	alice = near.AccountID("alice.testnet")
	bob   = near.AccountID("bob.testnet")
	mally = near.AccountID("mally.testnet")
)

func newTestLedger(t *testing.T, policy Policy) *Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.NewStater(db).NewState()
	l, err := Init(st, &InitConfig{
		Owner:  owner,
		Agent:  agent,
		Policy: policy,
	})
	require.NoError(t, err)
	return l
}

func agentLedger(t *testing.T) *Ledger {
	return newTestLedger(t, Policy{Model: TrustedAgent, Bonus: BonusGated})
}

func TestInit(t *testing.T) {
	db, _ := lvldb.NewMem()
	st := state.NewStater(db).NewState()

	_, err := New(st)
	assert.Error(t, err, "uninitialized state must be rejected")

	_, err = Init(st, &InitConfig{Owner: owner, Agent: agent, Policy: Policy{Model: "bogus", Bonus: BonusGated}})
	assert.Error(t, err)

	l, err := Init(st, &InitConfig{
		Owner:      owner,
		Agent:      agent,
		Policy:     Policy{Model: TrustedAgent, Bonus: BonusGated},
		RewardPool: big.NewInt(200),
		Stakers: []InitStaker{
			{ID: alice, Amount: big.NewInt(500), BonusApproved: true},
		},
	})
	require.NoError(t, err)

	gotOwner, err := l.GetOwner()
	assert.NoError(t, err)
	assert.Equal(t, owner, gotOwner)

	gotAgent, err := l.GetAgent()
	assert.NoError(t, err)
	assert.Equal(t, agent, gotAgent)

	pool, err := l.GetRewardPoolBalance()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(200), pool)

	entry, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, big.NewInt(500), entry.Amount)
	assert.True(t, entry.BonusApproved)

	_, err = Init(st, &InitConfig{Owner: owner, Agent: agent, Policy: Policy{Model: TrustedAgent, Bonus: BonusGated}})
	assert.Error(t, err, "double init must be rejected")
}

func TestDepositRewardFunds(t *testing.T) {
	l := agentLedger(t)

	assert.True(t, IsValidation(l.DepositRewardFunds(nil)))
	assert.True(t, IsValidation(l.DepositRewardFunds(big.NewInt(0))))

	require.NoError(t, l.DepositRewardFunds(big.NewInt(200)))
	pool, err := l.GetRewardPoolBalance()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(200), pool)

	// open to any caller, increments accumulate
	require.NoError(t, l.DepositRewardFunds(big.NewInt(50)))
	pool, _ = l.GetRewardPoolBalance()
	assert.Equal(t, big.NewInt(250), pool)
}

func TestStakeAccumulates(t *testing.T) {
	l := agentLedger(t)

	assert.True(t, IsValidation(l.Stake(alice, big.NewInt(0))))
	assert.True(t, IsValidation(l.Stake(alice, nil)))

	require.NoError(t, l.Stake(alice, big.NewInt(1000000)))
	entry, err := l.GetStakeInfo(alice)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, big.NewInt(1000000), entry.Amount)
	assert.False(t, entry.BonusApproved)

	// staking again accumulates, approval flag untouched
	require.NoError(t, l.ApproveBonus(agent, alice))
	require.NoError(t, l.Stake(alice, big.NewInt(7)))
	entry, err = l.GetStakeInfo(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000007), entry.Amount)
	assert.True(t, entry.BonusApproved)

	count, err := l.Count()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), count, "at most one entry per account")
}

func TestApproveBonus(t *testing.T) {
	l := agentLedger(t)
	require.NoError(t, l.Stake(alice, big.NewInt(1000000)))

	// wrong callers: owner is not the approver under trusted-agent policy
	for _, caller := range []near.AccountID{mally, alice, owner, ""} {
		err := l.ApproveBonus(caller, alice)
		assert.True(t, IsAuthorization(err), "caller %q", caller)
	}
	entry, _ := l.GetStakeInfo(alice)
	assert.False(t, entry.BonusApproved, "state unchanged after denied call")

	assert.True(t, IsValidation(l.ApproveBonus(agent, bob)), "staker not found")

	require.NoError(t, l.ApproveBonus(agent, alice))
	entry, _ = l.GetStakeInfo(alice)
	assert.True(t, entry.BonusApproved)

	// idempotent no-op on repeat
	require.NoError(t, l.ApproveBonus(agent, alice))
	entry, _ = l.GetStakeInfo(alice)
	assert.True(t, entry.BonusApproved)
}

func TestApproveBonusOwnerModel(t *testing.T) {
	l := newTestLedger(t, Policy{Model: OwnerApproves, Bonus: BonusGated})
	require.NoError(t, l.Stake(alice, big.NewInt(100)))

	assert.True(t, IsAuthorization(l.ApproveBonus(agent, alice)))
	require.NoError(t, l.ApproveBonus(owner, alice))
}

func TestWithdrawNoBonus(t *testing.T) {
	l := agentLedger(t)
	require.NoError(t, l.Stake(alice, big.NewInt(1000)))

	// bonus not approved: principal only, pool untouched
	amount, err := l.Withdraw(agent, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), amount)

	entry, err := l.GetStakeInfo(alice)
	assert.NoError(t, err)
	assert.Nil(t, entry, "entry deleted on withdrawal")

	// a fresh stake starts from zero again
	require.NoError(t, l.Stake(alice, big.NewInt(5)))
	entry, _ = l.GetStakeInfo(alice)
	assert.Equal(t, big.NewInt(5), entry.Amount)
	assert.False(t, entry.BonusApproved)
}

func TestWithdrawScenario(t *testing.T) {
	l := agentLedger(t)

	// deposit 200 into pool
	require.NoError(t, l.DepositRewardFunds(big.NewInt(200)))
	pool, _ := l.GetRewardPoolBalance()
	assert.Equal(t, "200", near.FormatBalance(pool))

	// stake 1,000,000 as alice
	require.NoError(t, l.Stake(alice, big.NewInt(1000000)))
	entry, _ := l.GetStakeInfo(alice)
	assert.Equal(t, "1000000", near.FormatBalance(entry.Amount))
	assert.False(t, entry.BonusApproved)

	// approval by a non-agent fails, state unchanged
	assert.True(t, IsAuthorization(l.ApproveBonus(mally, alice)))
	entry, _ = l.GetStakeInfo(alice)
	assert.False(t, entry.BonusApproved)

	// approval by the agent
	require.NoError(t, l.ApproveBonus(agent, alice))

	// bonus = floor(1000000*10/100) = 100000 > 200: insufficiency guard
	_, err := l.Withdraw(agent, alice)
	assert.True(t, IsInsufficientFunds(err))

	pool, _ = l.GetRewardPoolBalance()
	assert.Equal(t, big.NewInt(200), pool, "pool unchanged after failed withdraw")
	entry, _ = l.GetStakeInfo(alice)
	require.NotNil(t, entry, "entry unchanged after failed withdraw")
	assert.Equal(t, big.NewInt(1000000), entry.Amount)
	assert.True(t, entry.BonusApproved)

	// deposit 200,000 more, then withdraw succeeds
	require.NoError(t, l.DepositRewardFunds(big.NewInt(200000)))
	amount, err := l.Withdraw(agent, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1100000), amount)

	pool, _ = l.GetRewardPoolBalance()
	assert.Equal(t, big.NewInt(100200), pool)

	entry, _ = l.GetStakeInfo(alice)
	assert.Nil(t, entry)
}

func TestWithdrawAuthorization(t *testing.T) {
	l := agentLedger(t)
	require.NoError(t, l.Stake(alice, big.NewInt(1000)))

	// only the agent may trigger withdrawal under trusted-agent policy
	for _, caller := range []near.AccountID{alice, owner, mally, ""} {
		_, err := l.Withdraw(caller, alice)
		assert.True(t, IsAuthorization(err), "caller %q", caller)
	}

	// explicit target required
	_, err := l.Withdraw(agent, "")
	assert.True(t, IsValidation(err))

	// no entry for bob
	_, err = l.Withdraw(agent, bob)
	assert.True(t, IsValidation(err))
}

func TestSelfWithdraw(t *testing.T) {
	l := newTestLedger(t, Policy{Model: OwnerApproves, Bonus: BonusGated})
	require.NoError(t, l.DepositRewardFunds(big.NewInt(1000)))
	require.NoError(t, l.Stake(alice, big.NewInt(100)))
	require.NoError(t, l.ApproveBonus(owner, alice))

	// nobody may withdraw on alice's behalf
	_, err := l.Withdraw(agent, alice)
	assert.True(t, IsAuthorization(err))
	_, err = l.Withdraw(bob, alice)
	assert.True(t, IsAuthorization(err))

	// the staker self-withdraws, target implied by the caller
	amount, err := l.Withdraw(alice, "")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(110), amount)

	pool, _ := l.GetRewardPoolBalance()
	assert.Equal(t, big.NewInt(990), pool)
}

func TestUnconditionalBonus(t *testing.T) {
	l := newTestLedger(t, Policy{Model: TrustedAgent, Bonus: BonusUnconditional})
	require.NoError(t, l.DepositRewardFunds(big.NewInt(50)))
	require.NoError(t, l.Stake(alice, big.NewInt(100)))

	// bonus paid without approval whenever the entry exists
	amount, err := l.Withdraw(agent, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(110), amount)

	pool, _ := l.GetRewardPoolBalance()
	assert.Equal(t, big.NewInt(40), pool)
}

func TestConservation(t *testing.T) {
	l := agentLedger(t)

	deposits := []int64{200, 100000, 31337}
	var sum int64
	for _, d := range deposits {
		require.NoError(t, l.DepositRewardFunds(big.NewInt(d)))
		sum += d
	}

	stakes := map[near.AccountID]int64{alice: 123456, bob: 999}
	var bonuses int64
	for id, amount := range stakes {
		require.NoError(t, l.Stake(id, big.NewInt(amount)))
		require.NoError(t, l.ApproveBonus(agent, id))
		bonuses += amount * 10 / 100
	}
	for id := range stakes {
		_, err := l.Withdraw(agent, id)
		require.NoError(t, err)
	}

	pool, err := l.GetRewardPoolBalance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(sum-bonuses), pool)
}

func TestChangeAgent(t *testing.T) {
	l := agentLedger(t)
	require.NoError(t, l.Stake(alice, big.NewInt(10)))

	for _, caller := range []near.AccountID{agent, alice, mally, ""} {
		err := l.ChangeAgent(caller, bob)
		assert.True(t, IsAuthorization(err), "caller %q", caller)
	}
	gotAgent, _ := l.GetAgent()
	assert.Equal(t, agent, gotAgent, "agent unchanged after denied call")

	assert.True(t, IsValidation(l.ChangeAgent(owner, "")))

	require.NoError(t, l.ChangeAgent(owner, bob))
	gotAgent, _ = l.GetAgent()
	assert.Equal(t, bob, gotAgent)

	// old agent lost the role, new agent gained it
	assert.True(t, IsAuthorization(l.ApproveBonus(agent, alice)))
	require.NoError(t, l.ApproveBonus(bob, alice))

	// staker entries untouched by rotation
	entry, _ := l.GetStakeInfo(alice)
	assert.Equal(t, big.NewInt(10), entry.Amount)
}

func TestStakerList(t *testing.T) {
	l := agentLedger(t)

	first, err := l.First()
	assert.NoError(t, err)
	assert.True(t, first.IsZero())

	ids := []near.AccountID{alice, bob, mally}
	for i, id := range ids {
		require.NoError(t, l.Stake(id, big.NewInt(int64(i+1))))
	}

	var walked []near.AccountID
	cursor, _ := l.First()
	for !cursor.IsZero() {
		walked = append(walked, cursor)
		cursor, err = l.Next(cursor)
		require.NoError(t, err)
	}
	assert.Equal(t, ids, walked)

	// withdraw the middle entry, list stays linked
	_, err = l.Withdraw(agent, bob)
	require.NoError(t, err)

	walked = walked[:0]
	cursor, _ = l.First()
	for !cursor.IsZero() {
		walked = append(walked, cursor)
		cursor, _ = l.Next(cursor)
	}
	assert.Equal(t, []near.AccountID{alice, mally}, walked)

	count, _ := l.Count()
	assert.Equal(t, uint64(2), count)
}

func TestSnapshot(t *testing.T) {
	l := agentLedger(t)
	require.NoError(t, l.DepositRewardFunds(big.NewInt(777)))
	require.NoError(t, l.Stake(alice, big.NewInt(1000000)))
	require.NoError(t, l.Stake(bob, big.NewInt(42)))
	require.NoError(t, l.ApproveBonus(agent, bob))

	snapshot, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, owner, snapshot.OwnerID)
	assert.Equal(t, agent, snapshot.AgentID)
	assert.Equal(t, "777", snapshot.RewardPoolBalance)
	assert.Equal(t, []SnapshotStaker{
		{AccountID: alice, Amount: "1000000", BonusApproved: false},
		{AccountID: bob, Amount: "42", BonusApproved: true},
	}, snapshot.Stakers)
}

func TestCalcBonus(t *testing.T) {
	tests := []struct {
		amount, bonus int64
	}{
		{1000000, 100000},
		{100, 10},
		{19, 1}, // truncating division
		{9, 0},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, big.NewInt(tt.bonus).String(), CalcBonus(big.NewInt(tt.amount)).String(), "amount %d", tt.amount)
	}
}
