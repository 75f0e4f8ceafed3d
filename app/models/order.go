package models

// OrderStatus is the lifecycle state of an order. Transitions are
// deliberately unrestricted: any status may be set to any other via a
// single update (matching the current product behavior: there is no
// enforced state machine).
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order belongs to a user and owns its items.
type Order struct {
	Base
	UserID  uint        `gorm:"not null;index" json:"user_id"`
	Address string      `gorm:"size:512" json:"address"`
	City    string      `gorm:"size:255" json:"city"`
	Status  OrderStatus `gorm:"size:32;not null;default:Pending;index" json:"status"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is one line of an order. UnitPrice is snapshotted from the
// product at order time and never updated afterwards, so historical orders
// are immune to later price changes.
type OrderItem struct {
	Base
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Total is the order's value derived from its item snapshots.
func (o Order) Total() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}
