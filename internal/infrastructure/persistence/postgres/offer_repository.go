package postgres

import (
	"context"
	"database/sql"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
)

type OfferRepository struct {
	db   *sql.DB
	tx   *sql.Tx
	isTx bool
}

func NewOfferRepository(conn *Connection) *OfferRepository {
	return &OfferRepository{
		db:   conn.GetDB(),
		isTx: false,
	}
}

func (r *OfferRepository) UpsertOffer(ctx context.Context, offer *market.Offer) error {
	// A repriced bid keeps its original created_at so the listing order from
	// GetOffersByItemID does not shift under the replacement.
	query := `
		INSERT INTO offers (item_id, buyer, price, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, buyer) DO UPDATE
		SET price = EXCLUDED.price
	`

	args := []interface{}{offer.ItemID, offer.Buyer, offer.Price, offer.CreatedAt}

	var err error
	if r.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, r.tx, "INSERT", "offers", query, args...)
	} else {
		_, err = monitoring.InstrumentExec(ctx, r.db, "INSERT", "offers", query, args...)
	}

	return err
}

func (r *OfferRepository) GetOffersByItemID(ctx context.Context, itemID int64) ([]*market.Offer, error) {
	query := `
		SELECT item_id, buyer, price, created_at
		FROM offers
		WHERE item_id = $1
		ORDER BY created_at, buyer
	`

	var rows *sql.Rows
	var err error

	if r.isTx {
		rows, err = monitoring.InstrumentTxQuery(ctx, r.tx, "SELECT", "offers", query, itemID)
	} else {
		rows, err = monitoring.InstrumentQuery(ctx, r.db, "SELECT", "offers", query, itemID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*market.Offer
	for rows.Next() {
		var offer market.Offer
		if err := rows.Scan(&offer.ItemID, &offer.Buyer, &offer.Price, &offer.CreatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, &offer)
	}

	return offers, rows.Err()
}

func (r *OfferRepository) DeleteOffer(ctx context.Context, itemID int64, buyer string) (bool, error) {
	query := "DELETE FROM offers WHERE item_id = $1 AND buyer = $2"

	var result sql.Result
	var err error

	if r.isTx {
		result, err = monitoring.InstrumentTxExec(ctx, r.tx, "DELETE", "offers", query, itemID, buyer)
	} else {
		result, err = monitoring.InstrumentExec(ctx, r.db, "DELETE", "offers", query, itemID, buyer)
	}

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *OfferRepository) DeleteOffersByItemID(ctx context.Context, itemID int64) error {
	query := "DELETE FROM offers WHERE item_id = $1"

	var err error
	if r.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, r.tx, "DELETE", "offers", query, itemID)
	} else {
		_, err = monitoring.InstrumentExec(ctx, r.db, "DELETE", "offers", query, itemID)
	}

	return err
}
