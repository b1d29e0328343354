// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/rainbowpuffpuff/stakebonus/kv"
	"github.com/rainbowpuffpuff/stakebonus/near"
)

// Stage abstracts the changes collected from a state, ready to be committed
// to the persisted store in one batch.
type Stage struct {
	store   kv.GetPutter
	cache   *lru.Cache
	changes map[near.Bytes32][]byte
}

// Stage makes a stage out of all journaled changes of the state.
// The state stays usable afterwards.
func (s *State) Stage() *Stage {
	changes := make(map[near.Bytes32][]byte)
	s.sm.Journal(func(key near.Bytes32, value []byte) bool {
		changes[key] = value
		return true
	})
	return &Stage{
		store:   s.store,
		cache:   s.cache,
		changes: changes,
	}
}

// Commit commits the changes into the persisted store.
// Empty values delete their keys.
func (stage *Stage) Commit() error {
	batch := stage.store.NewBatch()
	for key, value := range stage.changes {
		if len(value) == 0 {
			if err := batch.Delete(key.Bytes()); err != nil {
				return &Error{err}
			}
		} else if err := batch.Put(key.Bytes(), value); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	// keep the shared read cache coherent with the store
	for key, value := range stage.changes {
		if len(value) == 0 {
			stage.cache.Add(key, []byte(nil))
		} else {
			stage.cache.Add(key, value)
		}
	}
	return nil
}
