package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/generator"
)

type UnitOfWork struct {
	conn *Connection
	tx   *sql.Tx
	isTx bool
}

func NewUnitOfWork(conn *Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

func (u *UnitOfWork) Items() ports.ItemRepository {
	return &ItemRepository{db: u.conn.GetDB(), tx: u.tx, isTx: u.isTx}
}

func (u *UnitOfWork) Offers() ports.OfferRepository {
	return &OfferRepository{db: u.conn.GetDB(), tx: u.tx, isTx: u.isTx}
}

func (u *UnitOfWork) Gateway() ports.PaymentGateway {
	return &LedgerGateway{
		db:       u.conn.GetDB(),
		tx:       u.tx,
		isTx:     u.isTx,
		receipts: generator.NewReceiptGenerator(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.UnitOfWork, error) {
	if u.isTx {
		return nil, errors.New("transaction already started")
	}

	tx, err := u.conn.GetDB().BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable, // settlement correctness depends on it
	})
	if err != nil {
		return nil, err
	}

	return &UnitOfWork{
		conn: u.conn,
		tx:   tx,
		isTx: true,
	}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.isTx || u.tx == nil {
		return errors.New("no transaction to commit")
	}

	return u.tx.Commit()
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if !u.isTx || u.tx == nil {
		return errors.New("no transaction to rollback")
	}

	return u.tx.Rollback()
}
