package storage

import (
	"context"

	"chatchat-order/order-svc/internal/domain"
)

// UnconfiguredStore stands in when store credentials are missing so the
// service can still answer every request with a configuration error.
type UnconfiguredStore struct {
	Missing []string
}

func (s UnconfiguredStore) err() error {
	return &domain.ConfigError{Component: "data store", Missing: s.Missing}
}

func (s UnconfiguredStore) ListAvailableMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return nil, s.err()
}

func (s UnconfiguredStore) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return nil, s.err()
}

func (s UnconfiguredStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return s.err()
}

func (s UnconfiguredStore) ListActiveOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return nil, s.err()
}

func (s UnconfiguredStore) ListOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	return nil, s.err()
}

func (s UnconfiguredStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (int64, error) {
	return 0, s.err()
}
