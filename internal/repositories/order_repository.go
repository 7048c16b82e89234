package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arnavkapoor/storefront-platform/internal/models"
	"github.com/arnavkapoor/storefront-platform/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	// CreateOrderFromCart inserts the order and deletes the owner's cart in a
	// single transaction, so checkout can never leave an order without
	// clearing the cart or vice versa.
	CreateOrderFromCart(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (time.Time, error)
	ListOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

var orderSortColumns = map[string]string{
	"createdAt": "o.created_at",
	"total":     "o.total",
	"status":    "o.status",
	"userEmail": "u.email",
}

func (r *orderRepository) CreateOrderFromCart(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO orders (id, user_id, items, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.ExecContext(dbCtx, query, order.ID, order.UserID, itemsJSON, order.Total, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	_, err = tx.ExecContext(dbCtx, `DELETE FROM carts WHERE user_id = $1`, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		SELECT id, user_id, items, total, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.UserID, &itemsJSON, &order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (time.Time, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3
	`

	now := time.Now()

	result, err := r.DB.ExecContext(dbCtx, query, status, now, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return time.Time{}, sql.ErrNoRows
	}

	return now, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, q *models.OrderQuery) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	join := ""
	selectEmail := ""

	if q.IncludeEmail {
		// LEFT JOIN keeps orders whose owner row is gone; the email falls back
		// to 'Unknown' in that case.
		join = ` LEFT JOIN users u ON o.user_id = u.id`
		selectEmail = `, COALESCE(u.email, 'Unknown')`
	}

	where := ` WHERE 1=1`

	args := []any{}

	if q.UserID != nil {
		args = append(args, *q.UserID)
		where += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}

	if q.Status != "" {
		args = append(args, q.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}

	if q.Search != "" && q.IncludeEmail {
		args = append(args, "%"+q.Search+"%")
		where += fmt.Sprintf(" AND (o.id::text ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args))
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM orders o` + join + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := orderSortColumns[q.SortBy]
	if !ok || (sortColumn == "u.email" && !q.IncludeEmail) {
		sortColumn = "o.created_at"
	}

	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.PageSize

	args = append(args, q.PageSize, offset)
	query := `SELECT o.id, o.user_id, o.items, o.total, o.status, o.created_at, o.updated_at` + selectEmail +
		` FROM orders o` + join + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortColumn, direction, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order

		var itemsJSON []byte

		dest := []any{&order.ID, &order.UserID, &itemsJSON, &order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt}
		if q.IncludeEmail {
			dest = append(dest, &order.UserEmail)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal order items: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
