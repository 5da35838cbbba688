package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2)" binding:"required,gt=0"`
	StockQuantity int            `json:"stockQuantity" binding:"min=0"`
	Category      string         `json:"category" binding:"required"`
	ImageUrl      string         `json:"imageUrl"`
	Active        *bool          `json:"active" gorm:"default:true"`
	Specs         datatypes.JSON `json:"specs,omitempty"`
}

// IsActive treats a missing flag as active so rows created before the column
// existed stay visible.
func (p *Product) IsActive() bool {
	return p.Active == nil || *p.Active
}

func (p *Product) HasStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
