package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sepet-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	UpsertCartItem(ctx context.Context, userID, productID, quantity int) error
	GetCartItemQuantity(ctx context.Context, userID, productID int) (int, error)
	GetCartLines(ctx context.Context, userID int) ([]CartLine, error)
	FindCartOrderID(ctx context.Context, userID int) (int, error)
	DeleteCartItem(ctx context.Context, orderID, productID int) error

	CheckoutTx(ctx context.Context, userID int, items []CheckoutItem, address *string) (int, error)
	GetOrderWithLines(ctx context.Context, orderID int) (*Order, error)

	GetStatus(ctx context.Context, orderID int) (Status, error)
	UpdateAddress(ctx context.Context, orderID int, address string) error
	UpdateStatus(ctx context.Context, orderID int, status Status) error
	UpdateDetails(ctx context.Context, orderID int, trackingNumber, adminNote string) (Order, error)
	Delete(ctx context.Context, orderID int) error
	ListForAdmin(ctx context.Context, filter AdminFilter) ([]AdminOrder, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, total_price, is_cart, fulfillment_status,
		tracking_number, admin_note, order_date, address, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalPrice,
		&o.IsCart,
		&o.FulfillmentStatus,
		&o.TrackingNumber,
		&o.AdminNote,
		&o.OrderDate,
		&o.Address,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// UpsertCartItem ensures the user's open cart exists and adds the given
// quantity to its line for the product, all in one transaction. The
// partial unique index on (user_id) WHERE is_cart makes the cart
// creation race-free; the unique (order_id, product_id) pair makes the
// quantity increment atomic.
func (r *repository) UpsertCartItem(ctx context.Context, userID, productID, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertCartItem"),
		zap.Int("user_id", userID),
		zap.Int("product_id", productID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var orderID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, is_cart)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id) WHERE is_cart DO NOTHING
		RETURNING id
	`, userID).Scan(&orderID)

	if err == sql.ErrNoRows {
		// cart already existed
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM orders WHERE user_id = $1 AND is_cart",
			userID,
		).Scan(&orderID)
	}
	if err != nil {
		log.Error("failed to resolve cart order", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
	`, orderID, productID, quantity)
	if err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *repository) GetCartItemQuantity(ctx context.Context, userID, productID int) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx, `
		SELECT oi.quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = $1 AND o.is_cart AND oi.product_id = $2
	`, userID, productID).Scan(&quantity)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return quantity, nil
}

func (r *repository) GetCartLines(ctx context.Context, userID int) ([]CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartLines"),
		zap.Int("user_id", userID),
	)

	start := time.Now()

	query := `
	SELECT
		oi.id,
		oi.quantity,

		p.id,
		p.name,
		p.price,
		p.description,
		p.stock,
		p.image_url,
		p.category_id,
		p.created_at,
		p.updated_at
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.user_id = $1 AND o.is_cart
	ORDER BY oi.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	lines := []CartLine{}
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(
			&l.ID,
			&l.Quantity,
			&l.Product.ID,
			&l.Product.Name,
			&l.Product.Price,
			&l.Product.Description,
			&l.Product.Stock,
			&l.Product.ImageURL,
			&l.Product.CategoryID,
			&l.Product.CreatedAt,
			&l.Product.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("cart lines loaded",
		zap.Int("rows", len(lines)),
		zap.Duration("duration", time.Since(start)),
	)

	return lines, nil
}

func (r *repository) FindCartOrderID(ctx context.Context, userID int) (int, error) {
	var orderID int
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM orders WHERE user_id = $1 AND is_cart",
		userID,
	).Scan(&orderID)
	return orderID, err
}

func (r *repository) DeleteCartItem(ctx context.Context, orderID, productID int) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM order_items WHERE order_id = $1 AND product_id = $2",
		orderID, productID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// CheckoutTx finalizes a purchase in one transaction: it prices and
// reserves stock for every submitted line, creates the order with the
// server-computed total, and drops the user's open cart so stray cart
// rows cannot accumulate.
func (r *repository) CheckoutTx(ctx context.Context, userID int, items []CheckoutItem, address *string) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CheckoutTx"),
		zap.Int("user_id", userID),
		zap.Int("item_count", len(items)),
	)

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	finalAddress := "no-address"
	if address != nil && *address != "" {
		finalAddress = *address
	} else {
		var stored sql.NullString
		err := tx.QueryRowContext(ctx,
			"SELECT address FROM users WHERE id = $1",
			userID,
		).Scan(&stored)
		if err != nil {
			log.Error("failed to load user address", zap.Error(err))
			return 0, err
		}
		if stored.Valid && stored.String != "" {
			finalAddress = stored.String
		}
	}

	total := 0.0

	for _, item := range items {
		var price float64
		var stock int
		err := tx.QueryRowContext(ctx,
			"SELECT price, stock FROM products WHERE id = $1 FOR UPDATE",
			item.ProductID,
		).Scan(&price, &stock)
		if err == sql.ErrNoRows {
			return 0, ErrProductNotFound
		}
		if err != nil {
			return 0, err
		}

		if stock < item.Quantity {
			log.Warn("insufficient stock",
				zap.Int("product_id", item.ProductID),
				zap.Int("stock", stock),
				zap.Int("requested", item.Quantity),
			)
			return 0, ErrInsufficientStock
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1",
			item.ProductID, item.Quantity,
		); err != nil {
			return 0, err
		}

		total += price * float64(item.Quantity)
	}

	var orderID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_price, is_cart, order_date, address)
		VALUES ($1, $2, FALSE, NOW(), $3)
		RETURNING id
	`, userID, total, finalAddress).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, orderID, item.ProductID, item.Quantity); err != nil {
			log.Error("failed to insert order line", zap.Error(err))
			return 0, err
		}
	}

	// abandon the open cart, if any
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM orders WHERE user_id = $1 AND is_cart",
		userID,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	log.Info("checkout committed",
		zap.Int("order_id", orderID),
		zap.Float64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return orderID, nil
}

func (r *repository) GetOrderWithLines(ctx context.Context, orderID int) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1",
		orderID,
	)

	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id,
			oi.product_id,
			oi.quantity,
			p.id,
			p.name,
			p.price,
			p.image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Items = []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID,
			&l.ProductID,
			&l.Quantity,
			&l.Product.ID,
			&l.Product.Name,
			&l.Product.Price,
			&l.Product.ImageURL,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, l)
	}

	return &o, rows.Err()
}

func (r *repository) GetStatus(ctx context.Context, orderID int) (Status, error) {
	var status Status
	err := r.db.QueryRowContext(ctx,
		"SELECT fulfillment_status FROM orders WHERE id = $1",
		orderID,
	).Scan(&status)
	return status, err
}

func (r *repository) UpdateAddress(ctx context.Context, orderID int, address string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET address = $2, updated_at = NOW() WHERE id = $1",
		orderID, address,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET fulfillment_status = $2, updated_at = NOW() WHERE id = $1",
		orderID, status,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) UpdateDetails(ctx context.Context, orderID int, trackingNumber, adminNote string) (Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET tracking_number = $2, admin_note = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns,
		orderID, trackingNumber, adminNote,
	)
	return scanOrder(row)
}

// Delete is idempotent: deleting an absent order is not an error.
func (r *repository) Delete(ctx context.Context, orderID int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	return err
}

func (r *repository) ListForAdmin(ctx context.Context, filter AdminFilter) ([]AdminOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListForAdmin"),
	)

	start := time.Now()

	where := []string{"NOT o.is_cart"}
	args := []any{}

	if filter.Status != nil {
		log = log.With(zap.String("filter_status", string(*filter.Status)))
		where = append(where, fmt.Sprintf("o.fulfillment_status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	if filter.NameSearch != nil && *filter.NameSearch != "" {
		log = log.With(zap.String("filter_search", *filter.NameSearch))
		where = append(where, fmt.Sprintf("u.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter.NameSearch+"%")
	}

	query := `
	SELECT
		o.id,
		o.user_id,
		o.total_price,
		o.is_cart,
		o.fulfillment_status,
		o.tracking_number,
		o.admin_note,
		o.order_date,
		o.address,
		o.created_at,
		o.updated_at,

		u.id,
		u.name,
		u.email,

		oi.id,
		oi.product_id,
		oi.quantity,

		p.id,
		p.name,
		p.price,
		p.image_url
	FROM orders o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY o.id, oi.id
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	orders := []AdminOrder{}
	index := map[int]int{}

	for rows.Next() {
		var (
			o            AdminOrder
			itemID       sql.NullInt64
			itemProdID   sql.NullInt64
			itemQuantity sql.NullInt64
			productID    sql.NullInt64
			productName  sql.NullString
			productPrice sql.NullFloat64
			imageURL     *string
		)

		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.TotalPrice,
			&o.IsCart,
			&o.FulfillmentStatus,
			&o.TrackingNumber,
			&o.AdminNote,
			&o.OrderDate,
			&o.Address,
			&o.CreatedAt,
			&o.UpdatedAt,
			&o.User.ID,
			&o.User.Name,
			&o.User.Email,
			&itemID,
			&itemProdID,
			&itemQuantity,
			&productID,
			&productName,
			&productPrice,
			&imageURL,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}

		pos, seen := index[o.ID]
		if !seen {
			o.Items = []Line{}
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}

		if itemID.Valid {
			orders[pos].Items = append(orders[pos].Items, Line{
				ID:        int(itemID.Int64),
				ProductID: int(itemProdID.Int64),
				Quantity:  int(itemQuantity.Int64),
				Product: LineProduct{
					ID:       int(productID.Int64),
					Name:     productName.String,
					Price:    productPrice.Float64,
					ImageURL: imageURL,
				},
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("admin listing loaded",
		zap.Int("orders", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}
