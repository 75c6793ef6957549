package orm

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,16}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

// NewModelBucket returns a bucket that stores models of the same type as
// the given example. It panics on an invalid bucket name, as buckets are
// declared during startup.
func NewModelBucket(name string, example Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(example),
	}
}

// Name returns the name of this bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used in the store for the given model key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One loads the model stored under given key into dest.
// This method returns ErrNotFound if the entity does not exist in the
// database. If given model type cannot be used to contain stored entity,
// ErrType is returned.
func (b ModelBucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %s: %s", b.name, err)
	}
	return nil
}

// Has returns true if a model is stored under given key.
func (b ModelBucket) Has(db quorum.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and saves given model under given key.
func (b ModelBucket) Put(db quorum.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be stored in %s", m, b.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %s: %s", b.name, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// Iterate calls fn with every stored model in key order, starting with the
// given key (inclusive, nil for the first). Iteration stops when fn returns
// false or an error.
func (b ModelBucket) Iterate(db quorum.ReadOnlyKVStore, start []byte, fn func(key []byte, m Model) (bool, error)) error {
	it, err := db.Iterator(b.DBKey(start), prefixEnd(b.prefix))
	if err != nil {
		return errors.Wrap(err, "iterator")
	}
	defer it.Close()

	for it.Valid() {
		m := reflect.New(b.model.Elem()).Interface().(Model)
		if err := proto.Unmarshal(it.Value(), m); err != nil {
			return errors.Wrapf(errors.ErrModel, "unmarshal %s: %s", b.name, err)
		}
		more, err := fn(it.Key()[len(b.prefix):], m)
		if err != nil || !more {
			return err
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

// prefixEnd returns the first key that does not start with the prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
