package models

type Product struct {
	ID               int      `gorm:"primaryKey" json:"id"`
	Name             string   `gorm:"not null" json:"name"`
	Slug             string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string   `gorm:"not null" json:"description"`
	Price            float64  `gorm:"not null" json:"price"`
	OriginalPrice    *float64 `json:"originalPrice"` // pre-discount price, if discounted
	InspirationBrand string   `gorm:"not null" json:"inspirationBrand"`
	InStock          bool     `gorm:"not null" json:"inStock"`
	CategoryID       int      `gorm:"not null;index" json:"categoryId"`
	Details          string   `gorm:"not null" json:"details"`
	Comparison       string   `gorm:"not null" json:"comparison"`
	Material         string   `gorm:"not null" json:"material"`

	// Merchandising flags
	Featured   bool `gorm:"not null;index" json:"featured"`
	NewArrival bool `gorm:"not null;index" json:"newArrival"`
	BestSeller bool `gorm:"not null;index" json:"bestSeller"`
	TopRated   bool `gorm:"not null;index" json:"topRated"`
}

// ProductWithDetails is a product composed with everything the detail page shows.
type ProductWithDetails struct {
	Product
	Images   []ProductImage `json:"images"`
	Sizes    []ProductSize  `json:"sizes"`
	Colors   []ProductColor `json:"colors"`
	Reviews  []Review       `json:"reviews"`
	Category Category       `json:"category"`
}
