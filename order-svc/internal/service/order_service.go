package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"chatchat-order/order-svc/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActiveOrderLimit = 50
	PopularItemLimit = 10
)

// maxOrderTotal is the largest value the orders.total NUMERIC(12,2) column holds.
var maxOrderTotal = decimal.RequireFromString("9999999999.99")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type OrderService struct {
	store  Store
	tally  Tally
	events EventPublisher

	newID func() string
	now   func() time.Time
}

// NewOrderService wires the store with the optional tally and event
// publisher; either may be nil.
func NewOrderService(store Store, tally Tally, events EventPublisher) *OrderService {
	return &OrderService{
		store:  store,
		tally:  tally,
		events: events,
		newID:  func() string { return uuid.New().String() },
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *OrderService) Menu(ctx context.Context) (*domain.Menu, error) {
	items, err := s.store.ListAvailableMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	name := domain.DefaultRestaurantName
	for _, setting := range settings {
		if setting.Key == domain.RestaurantNameKey {
			name = setting.Value
		}
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return &domain.Menu{RestaurantName: name, Items: items}, nil
}

func (s *OrderService) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderReceipt, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalidOrder(err)
	}

	order := &domain.Order{
		ID:         s.newID(),
		TableID:    req.TableID,
		GuestCount: req.GuestCount,
		Note:       req.Note,
		Status:     domain.StatusNew,
		CreatedAt:  s.now(),
		Items:      make([]domain.OrderItem, 0, len(req.Items)),
	}
	if order.TableID == "" {
		order.TableID = domain.TakeoutTableID
	}
	if order.GuestCount == 0 {
		order.GuestCount = 1
	}

	total := decimal.Zero
	for _, line := range req.Items {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Qty))))
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Qty:        line.Qty,
		})
	}
	if total.GreaterThan(maxOrderTotal) {
		return nil, fmt.Errorf("%w: total exceeds %s", domain.ErrInvalidOrder, maxOrderTotal.StringFixed(2))
	}
	order.Total = total.InexactFloat64()

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.tally != nil {
		if err := s.tally.Record(ctx, order.Items); err != nil {
			log.Printf("Warning: failed to tally order %s: %v", order.ID, err)
		}
	}
	s.publish(ctx, domain.OrderEvent{
		Type:      domain.EventOrderCreated,
		OrderID:   order.ID,
		TableID:   order.TableID,
		Status:    order.Status,
		Total:     order.Total,
		Timestamp: order.CreatedAt,
	})

	return &domain.OrderReceipt{OrderID: order.ID, Status: order.Status, Total: order.Total}, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.store.ListActiveOrders(ctx, ActiveOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	items, err := s.store.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return domain.ErrInvalidStatus
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.ErrOrderNotFound
	}

	affected, err := s.store.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	s.publish(ctx, domain.OrderEvent{
		Type:      domain.EventOrderStatusChanged,
		OrderID:   orderID,
		Status:    next,
		Timestamp: s.now(),
	})
	return nil
}

func (s *OrderService) PopularToday(ctx context.Context) ([]domain.ItemCount, error) {
	if s.tally == nil {
		return nil, &domain.ConfigError{Component: "popularity tally", Missing: []string{"REDIS_ADDR"}}
	}
	counts, err := s.tally.Top(ctx, PopularItemLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read popular items: %w", err)
	}
	if counts == nil {
		counts = []domain.ItemCount{}
	}
	return counts, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
	}
}

func invalidOrder(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidOrder, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidOrder, strings.Join(msgs, "; "))
}
