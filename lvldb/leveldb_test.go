package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	key := []byte("key")
	value := []byte("value")

	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))

	has, err := db.Has(key)
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, db.Put(key, value))

	got, err := db.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	assert.NoError(t, db.Delete(key))
	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("stale"), []byte("x")))

	batch := db.NewBatch()
	assert.NoError(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.NoError(t, batch.Delete([]byte("stale")))
	assert.Equal(t, 3, batch.Len())

	// nothing visible until written
	has, _ := db.Has([]byte("k1"))
	assert.False(t, has)

	require.NoError(t, batch.Write())

	v, err := db.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	_, err = db.Get([]byte("stale"))
	assert.True(t, db.IsNotFound(err))
}
