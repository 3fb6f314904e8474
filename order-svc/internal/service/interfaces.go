package service

import (
	"context"

	"chatchat-order/order-svc/internal/domain"
)

// Store is the table-scoped view of the hosted data store.
type Store interface {
	ListAvailableMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	// CreateOrder writes the order row and all of its item rows atomically.
	CreateOrder(ctx context.Context, order *domain.Order) error
	ListActiveOrders(ctx context.Context, limit int) ([]domain.Order, error)
	ListOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (int64, error)
}

type Tally interface {
	Record(ctx context.Context, items []domain.OrderItem) error
	Top(ctx context.Context, n int64) ([]domain.ItemCount, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Menu(ctx context.Context) (*domain.Menu, error)
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderReceipt, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	PopularToday(ctx context.Context) ([]domain.ItemCount, error)
}

var _ OrderServiceInterface = (*OrderService)(nil)
