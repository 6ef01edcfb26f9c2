package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price" validate:"nonneg_decimal"`
	Category    string          `gorm:"type:varchar(100);index;not null" json:"category" validate:"required"`
	Image       string          `gorm:"type:text;not null" json:"image" validate:"required"`
	ImageCID    string          `gorm:"type:varchar(255)" json:"image_cid,omitempty"`
	Stock       int             `gorm:"default:0" json:"stock" validate:"gte=0"`
}

// ProductPatch is a partial product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,nonneg_decimal"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	Image       *string          `json:"image" validate:"omitempty,min=1"`
	ImageCID    *string          `json:"image_cid"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
}

// Apply copies the set fields of the patch onto p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.ImageCID != nil {
		p.ImageCID = *patch.ImageCID
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
}
