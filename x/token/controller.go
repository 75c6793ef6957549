package token

import (
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/shopspring/decimal"
	"github.com/tendermint/tendermint/libs/log"
)

// Genesis declares the token and its initial distribution.
type Genesis struct {
	Name     string         `json:"name" toml:"name"`
	Symbol   string         `json:"symbol" toml:"symbol"`
	Decimals uint32         `json:"decimals" toml:"decimals"`
	Holder   quorum.Address `json:"holder" toml:"-"`
	// InitialSupply is credited to Holder, in base units.
	InitialSupply string `json:"initial_supply" toml:"initial_supply"`
	// Cap is the maximum supply in base units. Empty or zero means no cap.
	Cap string `json:"cap" toml:"cap"`
}

// Controller keeps the ledger state. It is safe for concurrent use.
type Controller struct {
	mu       sync.RWMutex
	db       quorum.CacheableKVStore
	states   orm.ModelBucket
	accounts orm.ModelBucket
	logger   log.Logger
}

// NewController returns a controller that keeps the ledger in db.
func NewController(db quorum.CacheableKVStore, logger log.Logger) *Controller {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Controller{
		db:       db,
		states:   orm.NewModelBucket(StateBucketName, &State{}),
		accounts: orm.NewModelBucket(AccountBucketName, &Account{}),
		logger:   logger.With("module", "token"),
	}
}

// Initialized returns true once Init succeeded on this store.
func (c *Controller) Initialized() (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states.Has(c.db, stateKey)
}

// Init creates the ledger and credits the initial supply to the holder. It
// fails with ErrDuplicate if the ledger already exists.
func (c *Controller) Init(g Genesis) error {
	supply, err := ParseAmount(g.InitialSupply)
	if err != nil {
		return errors.Field("InitialSupply", err, "genesis")
	}
	if supply.IsPositive() {
		if err := g.Holder.Validate(); err != nil {
			return errors.Field("Holder", err, "genesis")
		}
	}
	capacity, err := ParseAmount(g.Cap)
	if err != nil {
		return errors.Field("Cap", err, "genesis")
	}
	state := &State{
		Name:     g.Name,
		Symbol:   g.Symbol,
		Decimals: g.Decimals,
		Supply:   formatAmount(supply),
		Cap:      formatAmount(capacity),
	}

	err = c.update(func(db quorum.KVStore) error {
		switch ok, err := c.states.Has(db, stateKey); {
		case err != nil:
			return err
		case ok:
			return errors.Wrap(errors.ErrDuplicate, "token already initialized")
		}
		if err := c.states.Put(db, stateKey, state); err != nil {
			return err
		}
		if supply.IsPositive() {
			return c.credit(db, g.Holder, supply)
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.logger.Info("token initialized", "symbol", g.Symbol, "supply", state.Supply, "holder", g.Holder)
	return nil
}

// update runs fn on a cache wrap of the store and writes the result only if
// fn succeeds.
func (c *Controller) update(fn func(db quorum.KVStore) error) error {
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

func (c *Controller) loadState(db quorum.ReadOnlyKVStore) (*State, error) {
	var s State
	if err := c.states.One(db, stateKey, &s); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrState, "token not initialized")
		}
		return nil, err
	}
	return &s, nil
}

func (c *Controller) balance(db quorum.ReadOnlyKVStore, a quorum.Address) (decimal.Decimal, error) {
	var acc Account
	switch err := c.accounts.One(db, a, &acc); {
	case errors.ErrNotFound.Is(err):
		return decimal.Zero, nil
	case err != nil:
		return decimal.Zero, err
	}
	return ParseAmount(acc.Balance)
}

func (c *Controller) setBalance(db quorum.KVStore, a quorum.Address, amount decimal.Decimal) error {
	if amount.IsZero() {
		return db.Delete(c.accounts.DBKey(a))
	}
	return c.accounts.Put(db, a, &Account{Balance: formatAmount(amount)})
}

func (c *Controller) credit(db quorum.KVStore, a quorum.Address, amount decimal.Decimal) error {
	bal, err := c.balance(db, a)
	if err != nil {
		return err
	}
	return c.setBalance(db, a, bal.Add(amount))
}

// Info returns the ledger state.
func (c *Controller) Info() (*State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadState(c.db)
}

// Balance returns the balance of given address in base units.
func (c *Controller) Balance(a quorum.Address) (decimal.Decimal, error) {
	if err := a.Validate(); err != nil {
		return decimal.Zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance(c.db, a)
}

// TotalSupply returns the amount of tokens in circulation in base units.
func (c *Controller) TotalSupply() (decimal.Decimal, error) {
	s, err := c.Info()
	if err != nil {
		return decimal.Zero, err
	}
	return ParseAmount(s.Supply)
}

// Cap returns the maximum supply. Zero means there is no cap.
func (c *Controller) Cap() (decimal.Decimal, error) {
	s, err := c.Info()
	if err != nil {
		return decimal.Zero, err
	}
	return ParseAmount(s.Cap)
}

// Paused returns true if minting and transfers are blocked.
func (c *Controller) Paused() (bool, error) {
	s, err := c.Info()
	if err != nil {
		return false, err
	}
	return s.Paused, nil
}

// FormatUnits renders base units using the token decimals.
func (c *Controller) FormatUnits(amount decimal.Decimal) (string, error) {
	s, err := c.Info()
	if err != nil {
		return "", err
	}
	return FormatUnits(amount, s.Decimals), nil
}

func (c *Controller) mint(to quorum.Address, amount decimal.Decimal) (decimal.Decimal, error) {
	var supply decimal.Decimal
	err := c.update(func(db quorum.KVStore) error {
		s, err := c.loadState(db)
		if err != nil {
			return err
		}
		if s.Paused {
			return errors.Wrap(errors.ErrState, "token is paused")
		}
		current, err := ParseAmount(s.Supply)
		if err != nil {
			return err
		}
		capacity, err := ParseAmount(s.Cap)
		if err != nil {
			return err
		}
		supply = current.Add(amount)
		if capacity.IsPositive() && supply.GreaterThan(capacity) {
			return errors.Wrapf(ErrCapExceeded, "supply %s would exceed cap %s", supply, capacity)
		}
		s.Supply = formatAmount(supply)
		if err := c.states.Put(db, stateKey, s); err != nil {
			return err
		}
		return c.credit(db, to, amount)
	})
	return supply, err
}

func (c *Controller) transfer(from, to quorum.Address, amount decimal.Decimal) error {
	return c.update(func(db quorum.KVStore) error {
		s, err := c.loadState(db)
		if err != nil {
			return err
		}
		if s.Paused {
			return errors.Wrap(errors.ErrState, "token is paused")
		}
		bal, err := c.balance(db, from)
		if err != nil {
			return err
		}
		if bal.LessThan(amount) {
			return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s, want %s", bal, amount)
		}
		if err := c.setBalance(db, from, bal.Sub(amount)); err != nil {
			return err
		}
		return c.credit(db, to, amount)
	})
}

func (c *Controller) setPaused(paused bool) error {
	return c.update(func(db quorum.KVStore) error {
		s, err := c.loadState(db)
		if err != nil {
			return err
		}
		if s.Paused == paused {
			return errors.Wrapf(errors.ErrState, "paused is already %t", paused)
		}
		s.Paused = paused
		return c.states.Put(db, stateKey, s)
	})
}

func (c *Controller) setCap(capacity decimal.Decimal) error {
	return c.update(func(db quorum.KVStore) error {
		s, err := c.loadState(db)
		if err != nil {
			return err
		}
		supply, err := ParseAmount(s.Supply)
		if err != nil {
			return err
		}
		if capacity.IsPositive() && supply.GreaterThan(capacity) {
			return errors.Wrapf(ErrCapExceeded, "supply %s is above cap %s", supply, capacity)
		}
		s.Cap = formatAmount(capacity)
		return c.states.Put(db, stateKey, s)
	})
}
