package storage

import (
	"context"
	"sort"
	"sync"

	"chatchat-order/order-svc/internal/domain"
)

// MemoryStore keeps all four tables in process memory. It backs local runs
// (STORE_URL=memory://) and handler tests.
type MemoryStore struct {
	mu       sync.Mutex
	menu     []domain.MenuItem
	settings []domain.Setting
	orders   []domain.Order
	items    []domain.OrderItem
}

func NewMemoryStore(menu []domain.MenuItem, settings []domain.Setting) *MemoryStore {
	return &MemoryStore{
		menu:     append([]domain.MenuItem(nil), menu...),
		settings: append([]domain.Setting(nil), settings...),
	}
}

func (s *MemoryStore) ListAvailableMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []domain.MenuItem{}
	for _, item := range s.menu {
		if item.Available {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	return items, nil
}

func (s *MemoryStore) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Setting(nil), s.settings...), nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := *order
	row.Items = nil
	s.orders = append(s.orders, row)
	for _, item := range order.Items {
		item.OrderID = order.ID
		s.items = append(s.items, item)
	}
	return nil
}

func (s *MemoryStore) ListActiveOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []domain.Order
	// newest insert first so equal timestamps keep a stable, recent-first order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].Status != domain.StatusArchived {
			orders = append(orders, s.orders[i])
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *MemoryStore) ListOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}
	var items []domain.OrderItem
	for _, item := range s.items {
		if _, ok := wanted[item.OrderID]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			affected++
		}
	}
	return affected, nil
}

// Order returns the stored row for id, without items.
func (s *MemoryStore) Order(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return domain.Order{}, false
}

func (s *MemoryStore) ItemCount(orderID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, item := range s.items {
		if item.OrderID == orderID {
			n++
		}
	}
	return n
}
