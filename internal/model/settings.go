package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SettingFeaturedProducts = "featuredProducts"
	SettingCarouselImages   = "carouselImages"
)

// Setting is a keyed JSON document of storefront configuration.
type Setting struct {
	Key       string         `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedBy string         `gorm:"type:varchar(255)" json:"updated_by"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type FeaturedProducts struct {
	FeaturedProductIDs []string  `json:"featured_product_ids"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
	UpdatedBy          string    `json:"updated_by,omitempty"`
}

type CarouselImage struct {
	CID   string `json:"cid,omitempty"`
	URL   string `json:"url" validate:"required"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}

type Carousel struct {
	Images    []CarouselImage `json:"images" validate:"dive"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
	UpdatedBy string          `json:"updated_by,omitempty"`
}
