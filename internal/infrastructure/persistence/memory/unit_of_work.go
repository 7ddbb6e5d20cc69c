package memory

import (
	"context"
	"errors"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
)

type UnitOfWork struct {
	store    *Store
	isTx     bool
	snapshot *storeState
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Items() ports.ItemRepository {
	return &ItemRepository{store: u.store, isTx: u.isTx}
}

func (u *UnitOfWork) Offers() ports.OfferRepository {
	return &OfferRepository{store: u.store, isTx: u.isTx}
}

func (u *UnitOfWork) Gateway() ports.PaymentGateway {
	return &Ledger{store: u.store, isTx: u.isTx}
}

// Begin takes the whole-registry lock and snapshots state for rollback. The
// lock is held until Commit or Rollback, giving each mutating operation
// serialized, all-or-nothing semantics.
func (u *UnitOfWork) Begin(ctx context.Context) (ports.UnitOfWork, error) {
	if u.isTx {
		return nil, errors.New("transaction already started")
	}

	u.store.mu.Lock()

	return &UnitOfWork{
		store:    u.store,
		isTx:     true,
		snapshot: u.store.snapshot(),
	}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.isTx {
		return errors.New("no transaction to commit")
	}

	u.snapshot = nil
	u.store.mu.Unlock()
	u.isTx = false
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if !u.isTx {
		return errors.New("no transaction to rollback")
	}

	u.store.restore(u.snapshot)
	u.snapshot = nil
	u.store.mu.Unlock()
	u.isTx = false
	return nil
}
