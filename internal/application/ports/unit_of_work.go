package ports

import "context"

// UnitOfWork scopes one mutating marketplace operation. Begin returns a
// transaction-bound view; every repository and gateway call made through that
// view commits or rolls back together, so payment movement and item mutation
// are never observable half-done.
type UnitOfWork interface {
	Items() ItemRepository
	Offers() OfferRepository
	Gateway() PaymentGateway

	Begin(ctx context.Context) (UnitOfWork, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
