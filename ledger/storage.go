// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

var (
	slotOwner  = nameToSlot("owner-id")
	slotAgent  = nameToSlot("agent-id")
	slotPolicy = nameToSlot("policy")
	slotPool   = nameToSlot("reward-pool-balance")
	// staker doubly linked list
	slotHead  = nameToSlot("stakers-head")
	slotTail  = nameToSlot("stakers-tail")
	slotCount = nameToSlot("stakers-count")
)

func nameToSlot(name string) near.Bytes32 {
	return near.BytesToBytes32([]byte(name))
}

func stakerKey(id near.AccountID) near.Bytes32 {
	return near.Blake2b([]byte("stakers"), id.Bytes())
}

// storage is the root storage of the staking ledger.
type storage struct {
	state *state.State
}

func (s *storage) getEntry(id near.AccountID) (*StakerInfo, error) {
	var entry StakerInfo
	if err := s.state.DecodeStorage(stakerKey(id), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &entry)
	}); err != nil {
		return nil, errors.Wrap(err, "failed to get staker entry")
	}
	return &entry, nil
}

func (s *storage) setEntry(id near.AccountID, entry *StakerInfo) error {
	if err := s.state.EncodeStorage(stakerKey(id), func() ([]byte, error) {
		if entry.IsEmpty() {
			return nil, nil
		}
		return rlp.EncodeToBytes(entry)
	}); err != nil {
		return errors.Wrap(err, "failed to set staker entry")
	}
	return nil
}

func (s *storage) getAccount(slot near.Bytes32) (id near.AccountID, err error) {
	err = s.state.DecodeStorage(slot, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &id)
	})
	return
}

func (s *storage) setAccount(slot near.Bytes32, id near.AccountID) error {
	return s.state.EncodeStorage(slot, func() ([]byte, error) {
		if id.IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(id)
	})
}

func (s *storage) getPool() (*big.Int, error) {
	var balance big.Int
	if err := s.state.DecodeStorage(slotPool, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &balance)
	}); err != nil {
		return nil, errors.Wrap(err, "failed to get reward pool balance")
	}
	return &balance, nil
}

func (s *storage) setPool(balance *big.Int) error {
	if balance.Sign() < 0 {
		// every decrement is gated by a sufficiency check, this must not happen
		return errors.New("negative reward pool balance")
	}
	return s.state.EncodeStorage(slotPool, func() ([]byte, error) {
		if balance.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(balance)
	})
}

func (s *storage) getCount() (count uint64, err error) {
	err = s.state.DecodeStorage(slotCount, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &count)
	})
	return
}

func (s *storage) setCount(count uint64) error {
	return s.state.EncodeStorage(slotCount, func() ([]byte, error) {
		if count == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(count)
	})
}

func (s *storage) getPolicy() (policy Policy, err error) {
	err = s.state.DecodeStorage(slotPolicy, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &policy)
	})
	return
}

func (s *storage) setPolicy(policy Policy) error {
	return s.state.EncodeStorage(slotPolicy, func() ([]byte, error) {
		return rlp.EncodeToBytes(&policy)
	})
}

// appendStaker creates a fresh entry at the tail of the staker list.
func (s *storage) appendStaker(id near.AccountID, entry *StakerInfo) error {
	tail, err := s.getAccount(slotTail)
	if err != nil {
		return err
	}
	if tail.IsZero() {
		if err := s.setAccount(slotHead, id); err != nil {
			return err
		}
	} else {
		tailEntry, err := s.getEntry(tail)
		if err != nil {
			return err
		}
		tailEntry.Next = id
		if err := s.setEntry(tail, tailEntry); err != nil {
			return err
		}
		entry.Prev = tail
	}
	if err := s.setAccount(slotTail, id); err != nil {
		return err
	}
	if err := s.setEntry(id, entry); err != nil {
		return err
	}
	count, err := s.getCount()
	if err != nil {
		return err
	}
	return s.setCount(count + 1)
}

// removeStaker unlinks and deletes the entry.
func (s *storage) removeStaker(id near.AccountID, entry *StakerInfo) error {
	if entry.Prev.IsZero() {
		if err := s.setAccount(slotHead, entry.Next); err != nil {
			return err
		}
	} else {
		prevEntry, err := s.getEntry(entry.Prev)
		if err != nil {
			return err
		}
		prevEntry.Next = entry.Next
		if err := s.setEntry(entry.Prev, prevEntry); err != nil {
			return err
		}
	}
	if entry.Next.IsZero() {
		if err := s.setAccount(slotTail, entry.Prev); err != nil {
			return err
		}
	} else {
		nextEntry, err := s.getEntry(entry.Next)
		if err != nil {
			return err
		}
		nextEntry.Prev = entry.Prev
		if err := s.setEntry(entry.Next, nextEntry); err != nil {
			return err
		}
	}
	if err := s.setEntry(id, &StakerInfo{}); err != nil {
		return err
	}
	count, err := s.getCount()
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("staker count underflow")
	}
	return s.setCount(count - 1)
}
