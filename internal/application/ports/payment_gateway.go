package ports

import (
	"context"
)

// PaymentGateway moves currency between accounts. Transfers are all-or-nothing:
// a failed transfer leaves both balances untouched.
type PaymentGateway interface {
	GetBalance(ctx context.Context, account string) (int64, error)
	Transfer(ctx context.Context, from, to string, amount int64) error
	Credit(ctx context.Context, account string, amount int64) error
}
