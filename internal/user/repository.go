package user

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
	Create(ctx context.Context, params RegisterParams, passwordHash string, role Role) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) error
	ListExcluding(ctx context.Context, email string) ([]User, error)
	OrdersGraph(ctx context.Context, userID int) ([]OrderHistory, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, email, password_hash, name, phone, address, role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.Address,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *repository) Create(ctx context.Context, params RegisterParams, passwordHash string, role Role) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", params.Email),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name, phone, address, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		params.Email, passwordHash, params.Name, params.Phone, params.Address, role,
	)

	u, err := scanUser(row)
	if err != nil {
		log.Error("db: failed to insert user", zap.Error(err))
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1",
		email,
	)
	return scanUser(row)
}

func (r *repository) FindByID(ctx context.Context, id int) (User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	)
	return scanUser(row)
}

func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) error {
	set := []string{}
	args := []any{}

	if params.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *params.Name)
	}
	if params.Phone != nil {
		set = append(set, fmt.Sprintf("phone = $%d", len(args)+1))
		args = append(args, *params.Phone)
	}
	if params.Address != nil {
		set = append(set, fmt.Sprintf("address = $%d", len(args)+1))
		args = append(args, *params.Address)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, params.UserID)

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
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

func (r *repository) ListExcluding(ctx context.Context, email string) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email <> $1 ORDER BY id",
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// OrdersGraph loads every order for the user with its lines and products
// in one joined query.
func (r *repository) OrdersGraph(ctx context.Context, userID int) ([]OrderHistory, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "OrdersGraph"),
		zap.Int("user_id", userID),
	)

	start := time.Now()

	query := `
	SELECT
		o.id,
		o.total_price,
		o.is_cart,
		o.fulfillment_status,
		o.tracking_number,
		o.admin_note,
		o.order_date,
		o.address,

		oi.id,
		oi.quantity,

		p.id,
		p.name,
		p.price,
		p.image_url
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
	WHERE o.user_id = $1
	ORDER BY o.id, oi.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	orders := []OrderHistory{}
	index := map[int]int{}

	for rows.Next() {
		var (
			o            OrderHistory
			itemID       sql.NullInt64
			itemQuantity sql.NullInt64
			productID    sql.NullInt64
			productName  sql.NullString
			productPrice sql.NullFloat64
			imageURL     *string
		)

		if err := rows.Scan(
			&o.ID,
			&o.TotalPrice,
			&o.IsCart,
			&o.FulfillmentStatus,
			&o.TrackingNumber,
			&o.AdminNote,
			&o.OrderDate,
			&o.Address,
			&itemID,
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
			o.Items = []OrderHistoryItem{}
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}

		if itemID.Valid {
			orders[pos].Items = append(orders[pos].Items, OrderHistoryItem{
				ID:       int(itemID.Int64),
				Quantity: int(itemQuantity.Int64),
				Product: ProductBrief{
					ID:       int(productID.Int64),
					Name:     productName.String,
					Price:    productPrice.Float64,
					ImageURL: imageURL,
				},
			})
		}
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("orders graph loaded",
		zap.Int("orders", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}
