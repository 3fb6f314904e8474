package domain

import "time"

const (
	DefaultRestaurantName = "叙叙 chat chat"
	TakeoutTableID        = "外帶"
	RestaurantNameKey     = "restaurant_name"
)

type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusPreparing OrderStatus = "preparing"
	StatusDone      OrderStatus = "done"
	StatusArchived  OrderStatus = "archived"
)

// Valid reports whether s is one of the four known statuses. Any known status
// may follow any other; there is no transition graph.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPreparing, StatusDone, StatusArchived:
		return true
	}
	return false
}

type MenuItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	SortOrder int     `json:"sort_order"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Menu struct {
	RestaurantName string     `json:"restaurant_name"`
	Items          []MenuItem `json:"items"`
}

type Order struct {
	ID         string      `json:"id"`
	TableID    string      `json:"table_id"`
	GuestCount int         `json:"guest_count"`
	Note       string      `json:"note"`
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

// OrderItem is a snapshot of a menu item taken when the order was placed.
type OrderItem struct {
	OrderID    string  `json:"order_id"`
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
}

type OrderRequest struct {
	TableID    string      `json:"table_id"`
	GuestCount int         `json:"guest_count" validate:"omitempty,min=1,max=1000"`
	Note       string      `json:"note"`
	Items      []OrderLine `json:"items" validate:"required,min=1,dive"`
}

type OrderLine struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price" validate:"gte=0,lte=99999999.99"`
	Qty        int     `json:"qty" validate:"min=1,max=10000"`
}

type OrderReceipt struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Total   float64     `json:"total"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

// ItemCount is how many units of a menu item were ordered in a period.
type ItemCount struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Qty        int64  `json:"qty"`
}

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	TableID   string      `json:"table_id,omitempty"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)
