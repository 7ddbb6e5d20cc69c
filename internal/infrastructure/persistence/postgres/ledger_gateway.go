package postgres

import (
	"context"
	"database/sql"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/generator"
)

// LedgerGateway implements the payment gateway port on an account balance
// table. Inside a unit of work it shares the transaction with the item
// mutation, so settlement and state change commit or abort together.
type LedgerGateway struct {
	db       *sql.DB
	tx       *sql.Tx
	isTx     bool
	receipts *generator.ReceiptGenerator
}

func NewLedgerGateway(conn *Connection) *LedgerGateway {
	return &LedgerGateway{
		db:       conn.GetDB(),
		isTx:     false,
		receipts: generator.NewReceiptGenerator(),
	}
}

func (g *LedgerGateway) GetBalance(ctx context.Context, account string) (int64, error) {
	query := "SELECT balance FROM accounts WHERE address = $1"

	var row *sql.Row
	if g.isTx {
		row = monitoring.InstrumentTxQueryRow(ctx, g.tx, "SELECT", "accounts", query, account)
	} else {
		row = monitoring.InstrumentQueryRow(ctx, g.db, "SELECT", "accounts", query, account)
	}

	var balance int64
	if err := row.Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}

	return balance, nil
}

func (g *LedgerGateway) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return domainErrors.ErrPaymentFailed
	}
	if amount == 0 {
		return nil
	}

	// The debit only lands when the payer holds enough; zero rows affected
	// means insufficient funds (or no such account, which pays nothing either
	// way).
	debit := "UPDATE accounts SET balance = balance - $2 WHERE address = $1 AND balance >= $2"

	var result sql.Result
	var err error

	if g.isTx {
		result, err = monitoring.InstrumentTxExec(ctx, g.tx, "UPDATE", "accounts", debit, from, amount)
	} else {
		result, err = monitoring.InstrumentExec(ctx, g.db, "UPDATE", "accounts", debit, from, amount)
	}
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrInsufficientBalance
	}

	credit := `
		INSERT INTO accounts (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`

	if g.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, g.tx, "UPDATE", "accounts", credit, to, amount)
	} else {
		_, err = monitoring.InstrumentExec(ctx, g.db, "UPDATE", "accounts", credit, to, amount)
	}
	if err != nil {
		return err
	}

	return g.recordTransfer(ctx, from, to, amount)
}

func (g *LedgerGateway) Credit(ctx context.Context, account string, amount int64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}

	query := `
		INSERT INTO accounts (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`

	var err error
	if g.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, g.tx, "UPDATE", "accounts", query, account, amount)
	} else {
		_, err = monitoring.InstrumentExec(ctx, g.db, "UPDATE", "accounts", query, account, amount)
	}

	return err
}

func (g *LedgerGateway) recordTransfer(ctx context.Context, from, to string, amount int64) error {
	receipt, err := g.receipts.GenerateReceiptID()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transfers (id, from_account, to_account, amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if g.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, g.tx, "INSERT", "transfers", query, receipt, from, to, amount)
	} else {
		_, err = monitoring.InstrumentExec(ctx, g.db, "INSERT", "transfers", query, receipt, from, to, amount)
	}

	return err
}
