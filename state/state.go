// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/rainbowpuffpuff/stakebonus/kv"
	"github.com/rainbowpuffpuff/stakebonus/near"
	"github.com/rainbowpuffpuff/stakebonus/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages contract storage as a journaled working copy over the
// persisted key/value snapshot. Mutations stay in memory until a Stage
// is committed; checkpoints allow reverting everything a call did.
type State struct {
	store kv.GetPutter
	cache *lru.Cache
	sm    *stackedmap.StackedMap[near.Bytes32, []byte]
}

func newState(store kv.GetPutter, cache *lru.Cache) *State {
	state := &State{
		store: store,
		cache: cache,
	}
	state.sm = stackedmap.New(state.srcGet)
	// base layer, so that mutations are legal without an explicit checkpoint
	state.sm.Push()
	return state
}

// srcGet implements stackedmap.MapGetter, reading through the shared cache
// down to the persisted store. Missing keys read as empty values.
func (s *State) srcGet(key near.Bytes32) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]byte), true, nil
	}
	raw, err := s.store.Get(key.Bytes())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		raw = nil
	}
	s.cache.Add(key, raw)
	return raw, true, nil
}

// GetRawStorage returns the raw storage value for the given key.
// Empty value means the key is unset.
func (s *State) GetRawStorage(key near.Bytes32) ([]byte, error) {
	raw, _, err := s.sm.Get(key)
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

// SetRawStorage sets the raw storage value for the given key.
// Passing an empty value clears the key.
func (s *State) SetRawStorage(key near.Bytes32, raw []byte) {
	s.sm.Put(key, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// An empty encoding clears the key.
func (s *State) EncodeStorage(key near.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(key near.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}
