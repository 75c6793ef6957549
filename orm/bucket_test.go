package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (c *counter) Reset()         { *c = counter{} }
func (c *counter) String() string { return proto.CompactTextString(c) }
func (*counter) ProtoMessage()    {}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (o *other) Reset()         { *o = other{} }
func (o *other) String() string { return proto.CompactTextString(o) }
func (*other) ProtoMessage()    {}
func (*other) Validate() error  { return nil }

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters", &counter{})

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 7}))

	var c counter
	require.NoError(t, b.One(db, []byte("a"), &c))
	assert.Equal(t, int64(7), c.Count)

	err := b.One(db, []byte("missing"), &c)
	assert.True(t, errors.ErrNotFound.Is(err), "got %v", err)

	err = b.One(db, []byte("a"), &other{})
	assert.True(t, errors.ErrType.Is(err), "got %v", err)

	err = b.Put(db, []byte("b"), &counter{Count: -1})
	assert.True(t, errors.ErrModel.Is(err), "got %v", err)
	ok, err := b.Has(db, []byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Raw keys are namespaced by the bucket name.
	raw, err := db.Get([]byte("counters:a"))
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	counters := NewModelBucket("counters", &counter{})
	others := NewModelBucket("countersx", &other{})

	for i := uint64(0); i < 5; i++ {
		require.NoError(t, counters.Put(db, EncodeSequence(i), &counter{Count: int64(i * 10)}))
	}
	require.NoError(t, others.Put(db, []byte("zzz"), &other{Name: "not a counter"}))

	var got []int64
	err := counters.Iterate(db, EncodeSequence(2), func(key []byte, m Model) (bool, error) {
		got = append(got, m.(*counter).Count)
		return len(got) < 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 30}, got)

	got = nil
	err = counters.Iterate(db, nil, func(key []byte, m Model) (bool, error) {
		got = append(got, m.(*counter).Count)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 10, 20, 30, 40}, got)
}

func TestNewModelBucketInvalidName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("x", &counter{}) })
	assert.Panics(t, func() { NewModelBucket("With-Dash", &counter{}) })
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab;"), prefixEnd([]byte("ab:")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
