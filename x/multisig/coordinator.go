package multisig

import (
	"context"
	"encoding/binary"
	"hash/maphash"
	"sync"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/puzpuzpuz/xsync/v2"
	"github.com/tendermint/tendermint/libs/log"
)

// Coordinator gates actions behind owner approvals. It is safe for
// concurrent use.
//
// Operations on the same proposal are serialized by a per proposal lock.
// The store itself is guarded by a read write lock, so reads observe a
// consistent snapshot and run concurrently with each other.
type Coordinator struct {
	reg    *Registry
	exec   Executor
	bucket ProposalBucket

	// mu guards db.
	mu sync.RWMutex
	db quorum.CacheableKVStore

	locks *xsync.MapOf[uint64, *sync.Mutex]

	logger log.Logger
	now    func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for coordinator events.
func WithLogger(l log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithClock overrides the time source used to stamp proposals.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator returns a coordinator that keeps its proposals in db and
// forwards approved actions to exec.
func NewCoordinator(db quorum.CacheableKVStore, reg *Registry, exec Executor, opts ...Option) *Coordinator {
	if reg == nil {
		panic("registry is required")
	}
	if exec == nil {
		panic("executor is required")
	}
	c := &Coordinator{
		reg:    reg,
		exec:   exec,
		bucket: NewProposalBucket(),
		db:     db,
		locks:  xsync.NewTypedMapOf[uint64, *sync.Mutex](hashID),
		logger: quorum.DefaultLogger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "multisig")
	return c
}

func hashID(seed maphash.Seed, id uint64) uint64 {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], id)
	var h maphash.Hash
	h.SetSeed(seed)
	_, _ = h.Write(raw[:])
	return h.Sum64()
}

// loggerFor prefers the request logger over the one set with WithLogger.
func (c *Coordinator) loggerFor(ctx context.Context) log.Logger {
	if l, ok := quorum.LoggerFrom(ctx); ok {
		return l.With("module", "multisig")
	}
	return c.logger
}

// Registry returns the owner registry this coordinator was created with.
func (c *Coordinator) Registry() *Registry {
	return c.reg
}

// IsOwner returns true if given identity is one of the owners.
func (c *Coordinator) IsOwner(a quorum.Address) bool {
	return c.reg.IsOwner(a)
}

// lock acquires the lock of a single proposal. The returned function
// releases it.
func (c *Coordinator) lock(id uint64) func() {
	m, _ := c.locks.LoadOrStore(id, &sync.Mutex{})
	m.Lock()
	return m.Unlock
}

// update runs fn on a cache wrap of the store and writes the result only if
// fn succeeds.
func (c *Coordinator) update(fn func(db quorum.KVStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cache := c.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (c *Coordinator) authorize(who quorum.Address, action string) error {
	if !c.reg.IsOwner(who) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner and cannot %s", who, action)
	}
	return nil
}

// Submit stores a new pending proposal and returns its index. Indices are
// assigned densely, starting with 0. Submitting does not approve: the
// proposer must approve separately.
func (c *Coordinator) Submit(ctx context.Context, target string, payload []byte, proposer quorum.Address) (uint64, error) {
	if err := c.authorize(proposer, "submit"); err != nil {
		return 0, err
	}
	if err := validateTarget(target); err != nil {
		return 0, errors.Field("Target", err, "invalid proposal")
	}

	p := &Proposal{
		Target:    target,
		Payload:   cloneBytes(payload),
		Proposer:  proposer.Clone(),
		CreatedAt: c.now().Unix(),
	}
	err := c.update(func(db quorum.KVStore) error {
		_, err := c.bucket.Create(db, p)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "submit")
	}

	proposalsSubmitted.Inc()
	c.loggerFor(ctx).Info("proposal submitted",
		"id", p.ID, "target", target, "proposer", proposer)
	return p.ID, nil
}

// Get returns a copy of the proposal with given index.
func (c *Coordinator) Get(id uint64) (*Proposal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bucket.GetProposal(c.db, id)
}

// Count returns the number of proposals ever submitted, including executed
// ones.
func (c *Coordinator) Count() (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bucket.Count(c.db)
}

// Proposals returns up to limit proposals starting with index offset. A zero
// limit returns all of them.
func (c *Coordinator) Proposals(offset, limit uint64) ([]*Proposal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bucket.List(c.db, offset, limit)
}

// ApprovalCount returns the number of owners that approved given proposal.
func (c *Coordinator) ApprovalCount(id uint64) (uint32, error) {
	p, err := c.Get(id)
	if err != nil {
		return 0, err
	}
	return p.ApprovalCount(), nil
}

// HasApproved returns true if owner approved given proposal. Any identity
// can be queried, non-owners simply never approved anything.
func (c *Coordinator) HasApproved(id uint64, owner quorum.Address) (bool, error) {
	p, err := c.Get(id)
	if err != nil {
		return false, err
	}
	return p.HasApproved(owner), nil
}

// Executable returns true if given proposal is pending and reached the
// threshold. This is always computed and never stored.
func (c *Coordinator) Executable(id uint64) (bool, error) {
	p, err := c.Get(id)
	if err != nil {
		return false, err
	}
	return p.Executable(c.reg.Threshold()), nil
}

// Approve records the approval of given owner. Each owner can approve a
// proposal once and only while it is pending.
func (c *Coordinator) Approve(ctx context.Context, id uint64, approver quorum.Address) error {
	if err := c.authorize(approver, "approve"); err != nil {
		return err
	}

	unlock := c.lock(id)
	defer unlock()

	var count uint32
	err := c.update(func(db quorum.KVStore) error {
		p, err := c.bucket.GetProposal(db, id)
		if err != nil {
			return err
		}
		if p.Executed {
			return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
		}
		if p.HasApproved(approver) {
			return errors.Wrapf(ErrDuplicateApproval, "%s approved proposal %d", approver, id)
		}
		p.Approvals = append(p.Approvals, approver.Clone())
		count = p.ApprovalCount()
		return c.bucket.Update(db, p)
	})
	if err != nil {
		return err
	}

	approvalsRecorded.Inc()
	c.loggerFor(ctx).Info("proposal approved",
		"id", id, "approver", approver, "approvals", count, "threshold", c.reg.Threshold())
	return nil
}

// Execute forwards the action of an approved proposal to the executor and
// marks the proposal executed. Any owner can execute once the threshold is
// reached.
//
// If the executor fails, an error of the ErrExecutorFailure kind is
// returned and the proposal remains pending with all its approvals, so the
// execution can be retried.
func (c *Coordinator) Execute(ctx context.Context, id uint64, caller quorum.Address) (*Proposal, error) {
	logger := c.loggerFor(ctx).With("id", id)

	if err := c.authorize(caller, "execute"); err != nil {
		executions.WithLabelValues(resultRejected).Inc()
		return nil, err
	}

	unlock := c.lock(id)
	defer unlock()

	p, err := c.Get(id)
	if err != nil {
		executions.WithLabelValues(resultRejected).Inc()
		return nil, err
	}
	switch {
	case p.Executed:
		executions.WithLabelValues(resultRejected).Inc()
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	case !p.Executable(c.reg.Threshold()):
		executions.WithLabelValues(resultRejected).Inc()
		return nil, errors.Wrapf(ErrInsufficientApprovals, "proposal %d has %d of %d approvals",
			id, p.ApprovalCount(), c.reg.Threshold())
	}

	// The store lock is not held while the executor runs. The proposal
	// lock keeps other approvals and executions of this proposal out.
	effect, err := c.apply(ctx, p)
	if err != nil {
		executions.WithLabelValues(resultFailure).Inc()
		logger.Error("execution failed", "target", p.Target, "err", err)
		return nil, &ExecutorError{ID: id, Err: err}
	}

	p.Executed = true
	p.ExecutedAt = c.now().Unix()
	p.ExecutedBy = caller.Clone()
	p.Result = cloneBytes(effect.Data)
	err = c.update(func(db quorum.KVStore) error {
		return c.bucket.Update(db, p)
	})
	if err != nil {
		// The action was applied but could not be recorded.
		logger.Error("cannot mark proposal executed", "err", err)
		return nil, errors.Wrapf(err, "record execution of proposal %d", id)
	}

	executions.WithLabelValues(resultOK).Inc()
	logger.Info("proposal executed", "target", p.Target, "caller", caller, "log", effect.Log)
	return p.Copy(), nil
}

// apply calls the executor, turning a panic into an error.
func (c *Coordinator) apply(ctx context.Context, p *Proposal) (effect Effect, err error) {
	defer errors.Recover(&err)
	return c.exec.Apply(ctx, p.Target, cloneBytes(p.Payload))
}
