package models

type ProductSize struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	ProductID int    `gorm:"not null;index" json:"productId"`
	Size      string `gorm:"not null" json:"size"`
	Available bool   `gorm:"not null" json:"available"`
}

type ProductColor struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	ProductID int    `gorm:"not null;index" json:"productId"`
	Color     string `gorm:"not null" json:"color"` // swatch value, e.g. "#9B8579"
	ColorName string `gorm:"not null" json:"colorName"`
}
