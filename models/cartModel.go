package models

import "time"

// CartItem holds one (user, product) line. The composite unique index keeps a
// single row per pair; adding the same product again merges quantities.
// Deliberately no gorm soft-delete column: removing a line must free the
// (user, product) slot for a later re-add.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
}

func (ci *CartItem) Subtotal() float64 {
	return float64(ci.Quantity) * ci.Product.Price
}
