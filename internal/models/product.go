package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductCategories is the fixed catalogue taxonomy.
var ProductCategories = []string{
	"Chair",
	"Table",
	"Kids Chair & Table",
	"Set of Table & Chair",
	"3 Year Warranty Chair",
}

// IsValidProductCategory reports whether c is one of the known categories.
func IsValidProductCategory(c string) bool {
	for _, category := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Product is a catalogue item. Inactive products are hidden from dealers
// and cannot be the subject of a new enquiry.
type Product struct {
	BaseModel
	Code          string         `gorm:"uniqueIndex" json:"code"`
	Name          string         `json:"name"`
	Category      string         `gorm:"index" json:"category"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	Colors        pq.StringArray `gorm:"type:text[]" json:"colors"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	Warranty      string         `gorm:"default:3 Year Warranty" json:"warranty"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CreatedByID   *uuid.UUID     `gorm:"type:uuid" json:"created_by_id"`
}
