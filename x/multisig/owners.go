package multisig

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Registry is the fixed set of owners together with the approval threshold.
// It cannot be modified after creation.
type Registry struct {
	owners    []quorum.Address
	index     map[string]struct{}
	threshold uint32
}

// NewRegistry returns a registry of given owners that requires threshold
// approvals for a proposal to become executable. The owner list must not be
// empty or contain duplicates and the threshold must be between 1 and the
// number of owners. All problems found are returned together as an
// ErrConstruction error.
func NewRegistry(owners []quorum.Address, threshold uint32) (*Registry, error) {
	var errs error
	if len(owners) == 0 {
		errs = errors.AppendField(errs, "Owners", errors.Wrap(errors.ErrEmpty, "no owners"))
	}

	index := make(map[string]struct{}, len(owners))
	list := make([]quorum.Address, 0, len(owners))
	for i, o := range owners {
		field := fmt.Sprintf("Owners.%d", i)
		if err := o.Validate(); err != nil {
			errs = errors.AppendField(errs, field, err)
			continue
		}
		if _, ok := index[string(o)]; ok {
			errs = errors.AppendField(errs, field, errors.Wrapf(errors.ErrDuplicate, "owner %s", o))
			continue
		}
		index[string(o)] = struct{}{}
		list = append(list, o.Clone())
	}

	if threshold == 0 || int(threshold) > len(owners) {
		errs = errors.AppendField(errs, "Threshold",
			errors.Wrapf(errors.ErrInput, "threshold %d out of range [1, %d]", threshold, len(owners)))
	}

	if errs != nil {
		return nil, errors.Append(ErrConstruction.New("registry"), errs)
	}
	return &Registry{
		owners:    list,
		index:     index,
		threshold: threshold,
	}, nil
}

// IsOwner returns true if given identity is one of the owners.
func (r *Registry) IsOwner(a quorum.Address) bool {
	_, ok := r.index[string(a)]
	return ok
}

// Owners returns a copy of the owner list, in declaration order.
func (r *Registry) Owners() []quorum.Address {
	cpy := make([]quorum.Address, len(r.owners))
	for i, o := range r.owners {
		cpy[i] = o.Clone()
	}
	return cpy
}

// Threshold returns the number of approvals required for execution.
func (r *Registry) Threshold() uint32 {
	return r.threshold
}

// Size returns the number of owners.
func (r *Registry) Size() int {
	return len(r.owners)
}
