package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	// BucketName is where we store the proposals
	BucketName = "proposal"
	// SequenceName is the counter that assigns proposal indices
	SequenceName = "id"
)

// ProposalBucket is a type-safe wrapper around orm.ModelBucket. Proposals
// are stored under their index, encoded as 8 byte big endian, so that the
// natural key order is the submission order.
type ProposalBucket struct {
	orm.ModelBucket
	seq orm.Sequence
}

// NewProposalBucket initializes a ProposalBucket with default name.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Proposal{}),
		seq:         orm.NewSequence(BucketName, SequenceName),
	}
}

// Create assigns the next index to the proposal and saves it.
func (b ProposalBucket) Create(db quorum.KVStore, p *Proposal) (*Proposal, error) {
	id, err := b.seq.Next(db)
	if err != nil {
		return nil, errors.Wrap(err, "next index")
	}
	p.ID = id
	if err := b.Put(db, orm.EncodeSequence(id), p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProposal loads the proposal with given index. ErrNotFound is returned
// if no such proposal was ever submitted.
func (b ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, orm.EncodeSequence(id), &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %d", id)
	}
	return &p, nil
}

// Update saves an existing proposal.
func (b ProposalBucket) Update(db quorum.KVStore, p *Proposal) error {
	key := orm.EncodeSequence(p.ID)
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return errors.Wrap(err, "has")
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "proposal %d", p.ID)
	}
	return b.Put(db, key, p)
}

// Count returns the number of proposals ever submitted.
func (b ProposalBucket) Count(db quorum.ReadOnlyKVStore) (uint64, error) {
	return b.seq.Count(db)
}

// List returns up to limit proposals starting at index offset, in index
// order. A zero limit returns all remaining proposals.
func (b ProposalBucket) List(db quorum.ReadOnlyKVStore, offset, limit uint64) ([]*Proposal, error) {
	var res []*Proposal
	err := b.Iterate(db, orm.EncodeSequence(offset), func(key []byte, m orm.Model) (bool, error) {
		p, ok := m.(*Proposal)
		if !ok {
			return false, errors.WithType(errors.ErrModel, m)
		}
		res = append(res, p)
		return limit == 0 || uint64(len(res)) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
