package memory

import (
	"context"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

// Ledger is an in-memory account balance table implementing the payment
// gateway port. Transfers debit and credit under the store lock, so they are
// atomic with the item mutation sharing the transaction.
type Ledger struct {
	store *Store
	isTx  bool
}

func (l *Ledger) GetBalance(ctx context.Context, account string) (int64, error) {
	var balance int64

	l.store.withLock(l.isTx, func() {
		balance = l.store.balances[account]
	})

	return balance, nil
}

func (l *Ledger) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return domainErrors.ErrPaymentFailed
	}
	if amount == 0 {
		return nil
	}

	var err error

	l.store.withLock(l.isTx, func() {
		if l.store.balances[from] < amount {
			err = domainErrors.ErrInsufficientBalance
			return
		}
		l.store.balances[from] -= amount
		l.store.balances[to] += amount
	})

	return err
}

func (l *Ledger) Credit(ctx context.Context, account string, amount int64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}

	l.store.withLock(l.isTx, func() {
		l.store.balances[account] += amount
	})

	return nil
}
