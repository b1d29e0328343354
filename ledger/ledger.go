// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/rainbowpuffpuff/stakebonus/log"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

var (
	logger = log.WithContext("pkg", "ledger")

	bonusNumerator   = big.NewInt(10)
	bonusDenominator = big.NewInt(100)
)

// CalcBonus computes the withdrawal bonus for the given staked amount:
// floor(amount * 10 / 100), with truncating big-integer division.
func CalcBonus(amount *big.Int) *big.Int {
	bonus := new(big.Int).Mul(amount, bonusNumerator)
	return bonus.Div(bonus, bonusDenominator)
}

// Ledger implements the bonus staking contract over a state working copy.
// All mutations stay staged in the state; all-or-nothing per-call semantics
// are the caller's duty (checkpoint before, revert on error, commit on success).
type Ledger struct {
	storage *storage
	guard   *guard
	policy  Policy
}

// New binds a ledger to an initialized state.
func New(st *state.State) (*Ledger, error) {
	s := &storage{state: st}
	policy, err := s.getPolicy()
	if err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, errors.WithMessage(err, "ledger instance not initialized")
	}
	return &Ledger{
		storage: s,
		guard:   &guard{storage: s},
		policy:  policy,
	}, nil
}

// InitConfig is the instance record written at genesis.
type InitConfig struct {
	Owner      near.AccountID
	Agent      near.AccountID
	Policy     Policy
	RewardPool *big.Int
	Stakers    []InitStaker
}

// InitStaker pre-seeds one staker entry at genesis.
type InitStaker struct {
	ID            near.AccountID
	Amount        *big.Int
	BonusApproved bool
}

// Init writes the instance record into a fresh state and returns the bound
// ledger. It fails if the state already holds an instance.
func Init(st *state.State, cfg *InitConfig) (*Ledger, error) {
	if cfg.Owner.IsZero() {
		return nil, errors.New("owner id required")
	}
	if cfg.Agent.IsZero() {
		return nil, errors.New("agent id required")
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}

	s := &storage{state: st}
	if owner, err := s.getAccount(slotOwner); err != nil {
		return nil, err
	} else if !owner.IsZero() {
		return nil, errors.New("ledger instance already initialized")
	}

	if err := s.setAccount(slotOwner, cfg.Owner); err != nil {
		return nil, err
	}
	if err := s.setAccount(slotAgent, cfg.Agent); err != nil {
		return nil, err
	}
	if err := s.setPolicy(cfg.Policy); err != nil {
		return nil, err
	}
	pool := cfg.RewardPool
	if pool == nil {
		pool = new(big.Int)
	}
	if pool.Sign() < 0 {
		return nil, errors.New("negative reward pool")
	}
	if err := s.setPool(new(big.Int).Set(pool)); err != nil {
		return nil, err
	}

	for _, staker := range cfg.Stakers {
		if staker.ID.IsZero() {
			return nil, errors.New("staker id required")
		}
		if staker.Amount == nil || staker.Amount.Sign() <= 0 {
			return nil, errors.Errorf("staker %s: amount must be positive", staker.ID)
		}
		existing, err := s.getEntry(staker.ID)
		if err != nil {
			return nil, err
		}
		if !existing.IsEmpty() {
			return nil, errors.Errorf("staker %s: duplicate entry", staker.ID)
		}
		entry := &StakerInfo{
			Amount:        new(big.Int).Set(staker.Amount),
			BonusApproved: staker.BonusApproved,
		}
		if err := s.appendStaker(staker.ID, entry); err != nil {
			return nil, err
		}
	}

	logger.Info("initialized ledger instance",
		"owner", cfg.Owner,
		"agent", cfg.Agent,
		"model", cfg.Policy.Model,
		"bonus", cfg.Policy.Bonus,
	)
	return &Ledger{
		storage: s,
		guard:   &guard{storage: s},
		policy:  cfg.Policy,
	}, nil
}

//
// Calls - state change
//

// DepositRewardFunds adds the attached value to the shared reward pool.
// Open to any caller.
func (l *Ledger) DepositRewardFunds(deposit *big.Int) error {
	if deposit == nil || deposit.Sign() <= 0 {
		return validationErr("must attach funds")
	}
	pool, err := l.storage.getPool()
	if err != nil {
		return err
	}
	pool.Add(pool, deposit)
	if err := l.storage.setPool(pool); err != nil {
		return err
	}
	logger.Info("deposited reward funds", "amount", deposit, "balance", pool)
	return nil
}

// Stake commits the attached value for the calling account. The first call
// creates an entry; later calls accumulate, leaving the approval flag alone.
func (l *Ledger) Stake(staker near.AccountID, deposit *big.Int) error {
	if staker.IsZero() {
		return validationErr("missing staker identity")
	}
	if deposit == nil || deposit.Sign() <= 0 {
		return validationErr("must attach funds")
	}
	entry, err := l.storage.getEntry(staker)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		entry = &StakerInfo{Amount: new(big.Int).Set(deposit)}
		if err := l.storage.appendStaker(staker, entry); err != nil {
			return err
		}
	} else {
		entry.Amount = new(big.Int).Add(entry.Amount, deposit)
		if err := l.storage.setEntry(staker, entry); err != nil {
			return err
		}
	}
	logger.Info("staked", "staker", staker, "amount", deposit, "total", entry.Amount)
	return nil
}

// ApproveBonus marks the staker's bonus approved. Only the role designated by
// the policy may call it. Approving an already-approved staker is a no-op.
func (l *Ledger) ApproveBonus(caller, stakerID near.AccountID) error {
	ok, err := l.guard.authorize(caller, l.policy.approverRole(), "")
	if err != nil {
		return err
	}
	if !ok {
		return authorizationErr("caller is not allowed to approve bonuses")
	}
	if stakerID.IsZero() {
		return validationErr("missing staker_id")
	}
	entry, err := l.storage.getEntry(stakerID)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return validationErr("staker not found")
	}
	if entry.BonusApproved {
		logger.Debug("bonus already approved", "staker", stakerID)
		return nil
	}
	entry.BonusApproved = true
	if err := l.storage.setEntry(stakerID, entry); err != nil {
		return err
	}
	logger.Info("approved bonus", "staker", stakerID)
	return nil
}

// Withdraw releases the staker's full commitment, plus the bonus when due and
// covered by the reward pool. The entry is deleted; the returned amount is to
// be transferred to the staker's account after the state commit.
func (l *Ledger) Withdraw(caller, stakerID near.AccountID) (*big.Int, error) {
	if l.policy.Model == TrustedAgent {
		if stakerID.IsZero() {
			return nil, validationErr("missing staker_id")
		}
		ok, err := l.guard.authorize(caller, RoleAgent, "")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, authorizationErr("caller is not the trusted agent")
		}
	} else {
		// self-withdraw: the target is implicitly the caller
		if stakerID.IsZero() {
			stakerID = caller
		}
		ok, err := l.guard.authorize(caller, RoleSelfStaker, stakerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, authorizationErr("caller may only withdraw their own stake")
		}
	}

	entry, err := l.storage.getEntry(stakerID)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, validationErr("no funds to withdraw")
	}

	amount := new(big.Int).Set(entry.Amount)
	if l.policy.Bonus == BonusUnconditional || entry.BonusApproved {
		bonus := CalcBonus(entry.Amount)
		pool, err := l.storage.getPool()
		if err != nil {
			return nil, err
		}
		if pool.Cmp(bonus) < 0 {
			return nil, insufficientFundsErr("reward pool cannot cover bonus")
		}
		amount.Add(amount, bonus)
		if err := l.storage.setPool(pool.Sub(pool, bonus)); err != nil {
			return nil, err
		}
	}

	if err := l.storage.removeStaker(stakerID, entry); err != nil {
		return nil, err
	}
	logger.Info("withdrew stake", "staker", stakerID, "amount", amount)
	return amount, nil
}

// ChangeAgent rotates the agent identity. Owner only.
// Existing staker entries are untouched.
func (l *Ledger) ChangeAgent(caller, newAgentID near.AccountID) error {
	ok, err := l.guard.authorize(caller, RoleOwner, "")
	if err != nil {
		return err
	}
	if !ok {
		return authorizationErr("caller is not the owner")
	}
	if newAgentID.IsZero() {
		return validationErr("missing new_agent_id")
	}
	if err := l.storage.setAccount(slotAgent, newAgentID); err != nil {
		return err
	}
	logger.Info("changed agent", "agent", newAgentID)
	return nil
}

//
// Views - no state change, no authorization
//

// GetStakeInfo returns the staker's entry, or nil if none exists.
func (l *Ledger) GetStakeInfo(stakerID near.AccountID) (*StakerInfo, error) {
	entry, err := l.storage.getEntry(stakerID)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() {
		return nil, nil
	}
	return entry, nil
}

// GetRewardPoolBalance returns the current reward pool balance.
func (l *Ledger) GetRewardPoolBalance() (*big.Int, error) {
	return l.storage.getPool()
}

// GetOwner returns the owner identity.
func (l *Ledger) GetOwner() (near.AccountID, error) {
	return l.storage.getAccount(slotOwner)
}

// GetAgent returns the current agent identity.
func (l *Ledger) GetAgent() (near.AccountID, error) {
	return l.storage.getAccount(slotAgent)
}

// Policy returns the instance policy.
func (l *Ledger) Policy() Policy {
	return l.policy
}

// First returns the first staker of the list, empty if none.
func (l *Ledger) First() (near.AccountID, error) {
	return l.storage.getAccount(slotHead)
}

// Next returns the staker after the given one in the list.
// If the given id is not listed, it returns empty.
func (l *Ledger) Next(stakerID near.AccountID) (near.AccountID, error) {
	entry, err := l.storage.getEntry(stakerID)
	if err != nil {
		return "", err
	}
	if entry.IsEmpty() {
		return "", nil
	}
	return entry.Next, nil
}

// Count returns the number of staker entries.
func (l *Ledger) Count() (uint64, error) {
	return l.storage.getCount()
}

// Snapshot walks the staker list and produces the instance record.
func (l *Ledger) Snapshot() (*Snapshot, error) {
	owner, err := l.storage.getAccount(slotOwner)
	if err != nil {
		return nil, err
	}
	agent, err := l.storage.getAccount(slotAgent)
	if err != nil {
		return nil, err
	}
	pool, err := l.storage.getPool()
	if err != nil {
		return nil, err
	}
	snapshot := &Snapshot{
		OwnerID:           owner,
		AgentID:           agent,
		Policy:            l.policy,
		RewardPoolBalance: near.FormatBalance(pool),
		Stakers:           []SnapshotStaker{},
	}
	cursor, err := l.storage.getAccount(slotHead)
	if err != nil {
		return nil, err
	}
	for !cursor.IsZero() {
		entry, err := l.storage.getEntry(cursor)
		if err != nil {
			return nil, err
		}
		if entry.IsEmpty() {
			return nil, errors.Errorf("broken staker list at %s", cursor)
		}
		snapshot.Stakers = append(snapshot.Stakers, SnapshotStaker{
			AccountID:     cursor,
			Amount:        near.FormatBalance(entry.Amount),
			BonusApproved: entry.BonusApproved,
		})
		cursor = entry.Next
	}
	return snapshot, nil
}
