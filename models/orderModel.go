package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	gorm.Model
	UserID          uint        `json:"userId"`
	TotalAmount     float64     `json:"totalAmount" gorm:"type:decimal(10,2)"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:PENDING"`
	ShippingAddress string      `json:"shippingAddress"`
	OrderDate       time.Time   `json:"orderDate"`
	ShippedDate     *time.Time  `json:"shippedDate"`
	DeliveredDate   *time.Time  `json:"deliveredDate"`
	OrderItems      []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots name and price at checkout so later product edits do
// not rewrite order history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int     `json:"quantity"`
}

// The transition methods are unconditional setters. Callers that need a
// guard (cancel) must check CanBeCancelled first; the mutators never inspect
// the current status themselves.

func (o *Order) Confirm() {
	o.Status = OrderStatusConfirmed
}

func (o *Order) Ship() {
	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedDate = &now
}

func (o *Order) Deliver() {
	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredDate = &now
}

func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
