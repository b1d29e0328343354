// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/rainbowpuffpuff/stakebonus/kv"
)

const readCacheSize = 2048

// Stater is the creator of states, sharing a raw read cache across all
// states it creates.
type Stater struct {
	store kv.GetPutter
	cache *lru.Cache
}

// NewStater create a stater bound to the given store.
func NewStater(store kv.GetPutter) *Stater {
	cache, err := lru.New(readCacheSize)
	if err != nil {
		panic(err)
	}
	return &Stater{
		store: store,
		cache: cache,
	}
}

// NewState create a fresh working copy of the persisted state.
func (st *Stater) NewState() *State {
	return newState(st.store, st.cache)
}
