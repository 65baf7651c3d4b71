package models

type ProductImage struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	ProductID int    `gorm:"not null;index" json:"productId"`
	ImageURL  string `gorm:"not null" json:"imageUrl"`
	IsPrimary bool   `gorm:"not null" json:"isPrimary"`
}
