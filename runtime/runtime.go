// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"strconv"
	"sync"

	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/metrics"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
	"github.com/rainbowpuffpuff/stakebonus/xenv"
)

var (
	callCounter = metrics.LazyLoadCounterVec("ledger_call_count", []string{"method", "status"})
	poolGauge   = metrics.LazyLoadGauge("ledger_reward_pool_balance")
)

// Args is the structured argument object of a call.
type Args struct {
	StakerID   near.AccountID `json:"staker_id"`
	NewAgentID near.AccountID `json:"new_agent_id"`
}

// Call is one host-attributed invocation of a contract method.
type Call struct {
	Method  string
	Caller  near.AccountID
	Deposit *big.Int
	Args    Args
}

// Output is what the host observes from a committed call.
type Output struct {
	Transfers []xenv.Transfer
}

type methodDesc struct {
	payable bool
	run     func(l *ledger.Ledger, env *xenv.Environment, args *Args) error
}

// methods maps wire-level method names to their handlers, the way the
// contract exposes them on chain.
var methods = map[string]*methodDesc{
	"deposit_reward_funds": {
		payable: true,
		run: func(l *ledger.Ledger, env *xenv.Environment, _ *Args) error {
			return l.DepositRewardFunds(env.AttachedDeposit())
		},
	},
	"stake": {
		payable: true,
		run: func(l *ledger.Ledger, env *xenv.Environment, _ *Args) error {
			return l.Stake(env.Caller(), env.AttachedDeposit())
		},
	},
	"approve_bonus": {
		run: func(l *ledger.Ledger, env *xenv.Environment, args *Args) error {
			return l.ApproveBonus(env.Caller(), args.StakerID)
		},
	},
	"withdraw": {
		run: func(l *ledger.Ledger, env *xenv.Environment, args *Args) error {
			target := args.StakerID
			if target.IsZero() {
				target = env.Caller()
			}
			amount, err := l.Withdraw(env.Caller(), args.StakerID)
			if err != nil {
				return err
			}
			env.ScheduleTransfer(target, amount)
			return nil
		},
	},
	"change_agent": {
		run: func(l *ledger.Ledger, env *xenv.Environment, args *Args) error {
			return l.ChangeAgent(env.Caller(), args.NewAgentID)
		},
	},
}

// Runtime executes contract calls one at a time with all-or-nothing
// semantics, standing in for the host platform's scheduler: a call either
// commits fully or leaves no trace, and outbound transfers are dispatched
// only after the commit.
type Runtime struct {
	mu         sync.Mutex
	stater     *state.Stater
	dispatcher *Dispatcher
}

// New create a new runtime over an initialized instance state.
func New(stater *state.Stater, dispatcher *Dispatcher) (*Runtime, error) {
	// fail fast when the instance is not initialized
	if _, err := ledger.New(stater.NewState()); err != nil {
		return nil, err
	}
	return &Runtime{
		stater:     stater,
		dispatcher: dispatcher,
	}, nil
}

// NewLedger returns a read view of the ledger over a fresh working copy.
func (rt *Runtime) NewLedger() (*ledger.Ledger, error) {
	return ledger.New(rt.stater.NewState())
}

// Execute runs a single call to completion. On any error the working copy is
// reverted and discarded; on success the staged changes are committed and the
// scheduled transfers are handed to the dispatcher, fire-and-forget.
func (rt *Runtime) Execute(call *Call) (*Output, error) {
	desc, ok := methods[call.Method]
	if !ok {
		return nil, ledger.NewValidationError("unknown method " + strconv.Quote(call.Method))
	}
	if call.Caller.IsZero() {
		return nil, ledger.NewValidationError("missing caller account")
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	st := rt.stater.NewState()
	l, err := ledger.New(st)
	if err != nil {
		return nil, err
	}

	env := xenv.New(call.Caller, call.Deposit)
	if !desc.payable && env.AttachedDeposit().Sign() > 0 {
		callCounter().AddWithLabel(1, map[string]string{"method": call.Method, "status": "reverted"})
		return nil, ledger.NewValidationError("method " + strconv.Quote(call.Method) + " is not payable")
	}

	checkpoint := st.NewCheckpoint()
	if err := desc.run(l, env, &call.Args); err != nil {
		st.RevertTo(checkpoint)
		callCounter().AddWithLabel(1, map[string]string{"method": call.Method, "status": "reverted"})
		return nil, err
	}
	if err := st.Stage().Commit(); err != nil {
		st.RevertTo(checkpoint)
		callCounter().AddWithLabel(1, map[string]string{"method": call.Method, "status": "failed"})
		return nil, err
	}

	for _, transfer := range env.Transfers() {
		rt.dispatcher.Enqueue(transfer)
	}
	callCounter().AddWithLabel(1, map[string]string{"method": call.Method, "status": "committed"})
	if pool, err := l.GetRewardPoolBalance(); err == nil && pool.IsInt64() {
		poolGauge().Set(pool.Int64())
	}
	return &Output{Transfers: env.Transfers()}, nil
}
