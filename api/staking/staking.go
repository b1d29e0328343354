// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes the ledger over HTTP.
package staking

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rainbowpuffpuff/stakebonus/api/utils"
	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/runtime"
)

type Staking struct {
	rt   *runtime.Runtime
	bank *runtime.Bank
}

// New returns the staking endpoint group. bank may be nil when transfers
// leave the process.
func New(rt *runtime.Runtime, bank *runtime.Bank) *Staking {
	return &Staking{
		rt:   rt,
		bank: bank,
	}
}

func (s *Staking) handleExecuteCall(w http.ResponseWriter, req *http.Request) error {
	method := mux.Vars(req)["method"]

	var callReq CallRequest
	if err := utils.ParseJSON(req.Body, &callReq); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := near.ParseAccountID(callReq.Caller)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "caller"))
	}
	args, err := parseArgs(&callReq.Args)
	if err != nil {
		return utils.BadRequest(err)
	}

	out, err := s.rt.Execute(&runtime.Call{
		Method:  method,
		Caller:  caller,
		Deposit: (*big.Int)(callReq.Deposit),
		Args:    *args,
	})
	if err != nil {
		return convertLedgerError(err)
	}
	return utils.WriteJSON(w, &CallResponse{Transfers: convertTransfers(out.Transfers)})
}

func (s *Staking) handleGetStakers(w http.ResponseWriter, _ *http.Request) error {
	l, err := s.rt.NewLedger()
	if err != nil {
		return err
	}
	snapshot, err := l.Snapshot()
	if err != nil {
		return err
	}
	stakers := make([]StakeInfo, 0, len(snapshot.Stakers))
	for _, staker := range snapshot.Stakers {
		stakers = append(stakers, StakeInfo{
			AccountID:     string(staker.AccountID),
			Amount:        staker.Amount,
			BonusApproved: staker.BonusApproved,
		})
	}
	return utils.WriteJSON(w, stakers)
}

func (s *Staking) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	id, err := near.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	l, err := s.rt.NewLedger()
	if err != nil {
		return err
	}
	info, err := l.GetStakeInfo(id)
	if err != nil {
		return err
	}
	if info == nil {
		return utils.HTTPError(errors.New("staker not found"), http.StatusNotFound)
	}
	return utils.WriteJSON(w, &StakeInfo{
		AccountID:     string(id),
		Amount:        bigToString(info.Amount),
		BonusApproved: info.BonusApproved,
	})
}

func (s *Staking) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	l, err := s.rt.NewLedger()
	if err != nil {
		return err
	}
	pool, err := l.GetRewardPoolBalance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Pool{RewardPoolBalance: bigToString(pool)})
}

func (s *Staking) handleGetRoles(w http.ResponseWriter, _ *http.Request) error {
	l, err := s.rt.NewLedger()
	if err != nil {
		return err
	}
	owner, err := l.GetOwner()
	if err != nil {
		return err
	}
	agent, err := l.GetAgent()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Roles{
		OwnerID: string(owner),
		AgentID: string(agent),
		Policy:  l.Policy(),
	})
}

func (s *Staking) handleExport(w http.ResponseWriter, _ *http.Request) error {
	l, err := s.rt.NewLedger()
	if err != nil {
		return err
	}
	snapshot, err := l.Snapshot()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, snapshot)
}

func (s *Staking) handleGetBankBalance(w http.ResponseWriter, req *http.Request) error {
	if s.bank == nil {
		return utils.HTTPError(errors.New("no bank on this node"), http.StatusNotFound)
	}
	id, err := near.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return utils.WriteJSON(w, &BankBalance{
		AccountID: string(id),
		Balance:   s.bank.BalanceOf(id).String(),
	})
}

func parseArgs(args *CallArgs) (*runtime.Args, error) {
	parsed := runtime.Args{}
	if args.StakerID != "" {
		id, err := near.ParseAccountID(args.StakerID)
		if err != nil {
			return nil, errors.WithMessage(err, "args.staker_id")
		}
		parsed.StakerID = id
	}
	if args.NewAgentID != "" {
		id, err := near.ParseAccountID(args.NewAgentID)
		if err != nil {
			return nil, errors.WithMessage(err, "args.new_agent_id")
		}
		parsed.NewAgentID = id
	}
	return &parsed, nil
}

// convertLedgerError maps the contract error taxonomy onto http statuses.
func convertLedgerError(err error) error {
	switch {
	case ledger.IsValidation(err):
		return utils.BadRequest(err)
	case ledger.IsAuthorization(err):
		return utils.Forbidden(err)
	case ledger.IsInsufficientFunds(err):
		return utils.Conflict(err)
	default:
		return err
	}
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/calls/{method}").
		Methods(http.MethodPost).
		Name("staking_execute_call").
		HandlerFunc(utils.WrapHandlerFunc(s.handleExecuteCall))
	sub.Path("/stakers").
		Methods(http.MethodGet).
		Name("staking_get_stakers").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakers))
	sub.Path("/stakers/{id}").
		Methods(http.MethodGet).
		Name("staking_get_staker").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStaker))
	sub.Path("/pool").
		Methods(http.MethodGet).
		Name("staking_get_pool").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/roles").
		Methods(http.MethodGet).
		Name("staking_get_roles").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetRoles))
	sub.Path("/export").
		Methods(http.MethodGet).
		Name("staking_export").
		HandlerFunc(utils.WrapHandlerFunc(s.handleExport))
	sub.Path("/bank/{id}").
		Methods(http.MethodGet).
		Name("staking_get_bank_balance").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetBankBalance))
}
