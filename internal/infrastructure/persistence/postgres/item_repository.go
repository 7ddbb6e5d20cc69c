package postgres

import (
	"context"
	"database/sql"
	"fmt"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
)

type ItemRepository struct {
	db   *sql.DB
	tx   *sql.Tx
	isTx bool
}

func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{
		db:   conn.GetDB(),
		isTx: false,
	}
}

const itemColumns = "id, owner, creator, name, description, uri, price, for_sale, rarity, likes, created_at"

func scanItem(scan func(dest ...interface{}) error) (*market.Item, error) {
	var item market.Item
	var rarity string

	err := scan(
		&item.ID, &item.Owner, &item.Creator, &item.Name, &item.Description,
		&item.URI, &item.Price, &item.ForSale, &rarity, &item.Likes, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Rarity = market.Rarity(rarity)
	return &item, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *market.Item) (int64, error) {
	query := `
		INSERT INTO items (owner, creator, name, description, uri, price, for_sale, rarity, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	args := []interface{}{
		item.Owner, item.Creator, item.Name, item.Description, item.URI,
		item.Price, item.ForSale, string(item.Rarity), item.Likes, item.CreatedAt,
	}

	var id int64
	var err error

	if r.isTx {
		err = monitoring.InstrumentTxQueryRow(ctx, r.tx, "INSERT", "items", query, args...).Scan(&id)
	} else {
		err = monitoring.InstrumentQueryRow(ctx, r.db, "INSERT", "items", query, args...).Scan(&id)
	}

	if err != nil {
		return 0, err
	}

	item.ID = id
	return id, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id int64) (*market.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns)

	var row *sql.Row
	if r.isTx {
		row = monitoring.InstrumentTxQueryRow(ctx, r.tx, "SELECT", "items", query, id)
	} else {
		row = monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "items", query, id)
	}

	item, err := scanItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item *market.Item) error {
	query := `
		UPDATE items
		SET owner = $2, price = $3, for_sale = $4, likes = $5
		WHERE id = $1
	`

	args := []interface{}{item.ID, item.Owner, item.Price, item.ForSale, item.Likes}

	var result sql.Result
	var err error

	if r.isTx {
		result, err = monitoring.InstrumentTxExec(ctx, r.tx, "UPDATE", "items", query, args...)
	} else {
		result, err = monitoring.InstrumentExec(ctx, r.db, "UPDATE", "items", query, args...)
	}

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*market.Item, error) {
	return r.queryItems(ctx, fmt.Sprintf("SELECT %s FROM items ORDER BY id", itemColumns))
}

func (r *ItemRepository) SearchItems(ctx context.Context, q market.Query) ([]*market.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items", itemColumns)
	var clauses []string
	var args []interface{}

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if q.Owner != "" {
		args = append(args, q.Owner)
		clauses = append(clauses, "owner = "+next())
	}
	if q.Rarity != "" {
		args = append(args, string(q.Rarity))
		clauses = append(clauses, "rarity = "+next())
	}
	if q.ForSaleOnly {
		clauses = append(clauses, "for_sale = TRUE")
	}
	if q.Text != "" {
		args = append(args, "%"+q.Text+"%")
		placeholder := next()
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", placeholder, placeholder))
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	// Secondary key keeps ordering stable across equal prices and likes.
	switch q.Sort {
	case market.SortPriceAsc:
		query += " ORDER BY price ASC, id ASC"
	case market.SortPriceDesc:
		query += " ORDER BY price DESC, id ASC"
	case market.SortLikesDesc:
		query += " ORDER BY likes DESC, id ASC"
	default:
		query += " ORDER BY id ASC"
	}

	return r.queryItems(ctx, query, args...)
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*market.Item, error) {
	var rows *sql.Rows
	var err error

	if r.isTx {
		rows, err = monitoring.InstrumentTxQuery(ctx, r.tx, "SELECT", "items", query, args...)
	} else {
		rows, err = monitoring.InstrumentQuery(ctx, r.db, "SELECT", "items", query, args...)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*market.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *ItemRepository) AddLike(ctx context.Context, itemID int64, account string) (bool, error) {
	insert := `
		INSERT INTO likes (item_id, account, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (item_id, account) DO NOTHING
	`

	var result sql.Result
	var err error

	if r.isTx {
		result, err = monitoring.InstrumentTxExec(ctx, r.tx, "INSERT", "likes", insert, itemID, account)
	} else {
		result, err = monitoring.InstrumentExec(ctx, r.db, "INSERT", "likes", insert, itemID, account)
	}

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	bump := "UPDATE items SET likes = likes + 1 WHERE id = $1"
	if r.isTx {
		_, err = monitoring.InstrumentTxExec(ctx, r.tx, "UPDATE", "items", bump, itemID)
	} else {
		_, err = monitoring.InstrumentExec(ctx, r.db, "UPDATE", "items", bump, itemID)
	}

	return err == nil, err
}

func (r *ItemRepository) HasLiked(ctx context.Context, itemID int64, account string) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM likes WHERE item_id = $1 AND account = $2)"

	var row *sql.Row
	if r.isTx {
		row = monitoring.InstrumentTxQueryRow(ctx, r.tx, "SELECT", "likes", query, itemID, account)
	} else {
		row = monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "likes", query, itemID, account)
	}

	var liked bool
	if err := row.Scan(&liked); err != nil {
		return false, err
	}

	return liked, nil
}

func (r *ItemRepository) GetLikers(ctx context.Context, itemID int64) ([]string, error) {
	query := "SELECT account FROM likes WHERE item_id = $1 ORDER BY created_at, account"

	var rows *sql.Rows
	var err error

	if r.isTx {
		rows, err = monitoring.InstrumentTxQuery(ctx, r.tx, "SELECT", "likes", query, itemID)
	} else {
		rows, err = monitoring.InstrumentQuery(ctx, r.db, "SELECT", "likes", query, itemID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likers []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, err
		}
		likers = append(likers, account)
	}

	return likers, rows.Err()
}
