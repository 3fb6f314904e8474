package storage

import (
	"context"
	"database/sql"
	"fmt"

	"chatchat-order/order-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) ListAvailableMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, price, available, sort_order
		FROM menu_items
		WHERE available = true
		ORDER BY sort_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Available, &item.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT key, COALESCE(value, '') FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, table_id, guest_count, note, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, order.ID, order.TableID, order.GuestCount, order.Note, string(order.Status), order.Total, order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.MenuItemID, item.Name, item.Price, item.Qty); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) ListActiveOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, COALESCE(table_id, ''), guest_count, COALESCE(note, ''), status, total, created_at
		FROM orders
		WHERE status <> $1
		ORDER BY created_at DESC
		LIMIT $2`, string(domain.StatusArchived), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(&order.ID, &order.TableID, &order.GuestCount, &order.Note, &status, &order.Total, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Status = domain.OrderStatus(status)
		order.CreatedAt = order.CreatedAt.UTC()
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *PostgresStore) ListOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, price, qty
		FROM order_items
		WHERE order_id = ANY($1::uuid[])`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.MenuItemID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (int64, error) {
	result, err := s.DB.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", string(status), orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			available BOOLEAN NOT NULL DEFAULT true,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			table_id TEXT NOT NULL,
			guest_count INTEGER NOT NULL DEFAULT 1,
			note TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			total NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			menu_item_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			qty INTEGER NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS orders_status_created_at_idx ON orders (status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items (order_id)",
	}
	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
