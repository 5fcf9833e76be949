package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sepet-be/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{
	"id", "email", "password_hash", "name", "phone", "address", "role", "created_at", "updated_at",
}

func userRow(id int, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).
		AddRow(id, email, "hashed", "John", "555-0100", "Main St 1", "customer", now, now)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	params := RegisterParams{
		Email: "john@example.com",
		Name:  utils.StrPtr("John"),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(email, password_hash, name, phone, address, role\)`).
			WithArgs(params.Email, "hashed", "John", nil, nil, "customer").
			WillReturnRows(userRow(1, params.Email))

		u, err := repo.Create(ctx, params, "hashed", RoleCustomer)
		assert.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.Equal(t, params.Email, u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, params, "hashed", RoleCustomer)
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	email := "john@example.com"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs(email).
			WillReturnRows(userRow(1, email))

		u, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, email, u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, email)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(userRow(1, "john@example.com"))

		u, err := repo.FindByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success_AllFields", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET name = \$1, phone = \$2, address = \$3, updated_at = NOW\(\) WHERE id = \$4`).
			WithArgs("Jane", "555-0101", "Oak St 2", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(ctx, UpdateProfileParams{
			UserID:  1,
			Name:    utils.StrPtr("Jane"),
			Phone:   utils.StrPtr("555-0101"),
			Address: utils.StrPtr("Oak St 2"),
		})
		assert.NoError(t, err)
	})

	t.Run("Success_PartialFields", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET phone = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("555-0102", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(ctx, UpdateProfileParams{
			UserID: 1,
			Phone:  utils.StrPtr("555-0102"),
		})
		assert.NoError(t, err)
	})

	t.Run("NoFields_NoQuery", func(t *testing.T) {
		err := repo.UpdateProfile(ctx, UpdateProfileParams{UserID: 1})
		assert.NoError(t, err)
	})

	t.Run("NoRowsAffected", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(ctx, UpdateProfileParams{
			UserID: 99,
			Name:   utils.StrPtr("Ghost"),
		})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestRepository_ListExcluding(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := userRow(2, "a@example.com").
			AddRow(3, "b@example.com", "hashed", nil, nil, nil, "customer", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT .* FROM users WHERE email <> \$1 ORDER BY id`).
			WithArgs("admin@example.com").
			WillReturnRows(rows)

		users, err := repo.ListExcluding(ctx, "admin@example.com")
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "a@example.com", users[0].Email)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email <>`).
			WillReturnError(errors.New("db error"))

		_, err := repo.ListExcluding(ctx, "admin@example.com")
		assert.Error(t, err)
	})
}

func TestRepository_OrdersGraph(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	graphCols := []string{
		"o_id", "total_price", "is_cart", "fulfillment_status",
		"tracking_number", "admin_note", "order_date", "o_address",
		"oi_id", "quantity",
		"p_id", "p_name", "p_price", "p_image_url",
	}

	t.Run("Success_GroupsItemsByOrder", func(t *testing.T) {
		orderDate := time.Now()
		rows := sqlmock.NewRows(graphCols).
			AddRow(10, 40.0, false, "started", "TRK-1", nil, orderDate, "Main St", 100, 2, 7, "Widget", 20.0, nil).
			AddRow(10, 40.0, false, "started", "TRK-1", nil, orderDate, "Main St", 101, 1, 8, "Gadget", 5.0, nil).
			AddRow(11, 0.0, true, "started", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

		mock.ExpectQuery(`SELECT .* FROM orders o LEFT JOIN order_items oi`).
			WithArgs(1).
			WillReturnRows(rows)

		orders, err := repo.OrdersGraph(ctx, 1)
		assert.NoError(t, err)
		require.Len(t, orders, 2)

		assert.Equal(t, 10, orders[0].ID)
		require.Len(t, orders[0].Items, 2)
		assert.Equal(t, "Widget", orders[0].Items[0].Product.Name)
		assert.Equal(t, 2, orders[0].Items[0].Quantity)

		// cart order with no items scans to an empty slice
		assert.Equal(t, 11, orders[1].ID)
		assert.True(t, orders[1].IsCart)
		assert.Empty(t, orders[1].Items)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o`).
			WillReturnError(errors.New("db error"))

		_, err := repo.OrdersGraph(ctx, 1)
		assert.Error(t, err)
	})
}
