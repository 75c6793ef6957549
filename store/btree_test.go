package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, it Iterator) []Model {
	t.Helper()
	defer it.Close()

	var res []Model
	for ; it.Valid(); require.NoError(t, it.Next()) {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}

func models(kv ...string) []Model {
	var res []Model
	for i := 0; i < len(kv); i += 2 {
		res = append(res, Model{Key: []byte(kv[i]), Value: []byte(kv[i+1])})
	}
	return res
}

func TestMemStoreGetSet(t *testing.T) {
	db := MemStore()

	val, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	val, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete([]byte("a")))
	has, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("base"), []byte("0")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("new"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("base")))

	// parent is untouched until write
	val, err := db.Get([]byte("new"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = cache.Get([]byte("base"))
	require.NoError(t, err)
	assert.Nil(t, val)

	cache.Discard()
	val, err = db.Get([]byte("base"))
	require.NoError(t, err)
	assert.Equal(t, []byte("0"), val)

	cache = db.CacheWrap()
	require.NoError(t, cache.Set([]byte("new"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("base")))
	require.NoError(t, cache.Write())

	val, err = db.Get([]byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
	has, err := db.Has([]byte("base"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestIteratorMergesLayers(t *testing.T) {
	db := MemStore()
	for _, m := range models("a", "1", "c", "3", "e", "5") {
		require.NoError(t, db.Set(m.Key, m.Value))
	}

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Set([]byte("c"), []byte("33")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Delete([]byte("x")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full ascending": {
			want: models("a", "1", "b", "2", "c", "33"),
		},
		"full descending": {
			reverse: true,
			want:    models("c", "33", "b", "2", "a", "1"),
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("d"),
			want:  models("b", "2", "c", "33"),
		},
		"bounded descending": {
			start:   []byte("a"),
			end:     []byte("c"),
			reverse: true,
			want:    models("b", "2", "a", "1"),
		},
		"open end": {
			start: []byte("c"),
			want:  models("c", "33"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(t, it))
		})
	}
}

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator(models("k", "v"))
	assert.True(t, it.Valid())
	assert.Equal(t, []byte("k"), it.Key())
	require.NoError(t, it.Next())
	assert.False(t, it.Valid())
	assert.Panics(t, func() { it.Key() })
}
