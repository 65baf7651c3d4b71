package models

import "time"

type Review struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	ProductID        int       `gorm:"not null;index" json:"productId"`
	Rating           int       `gorm:"not null" json:"rating"`
	Title            string    `gorm:"not null" json:"title"`
	Content          string    `gorm:"not null" json:"content"`
	AuthorName       string    `gorm:"not null" json:"authorName"`
	VerifiedPurchase bool      `gorm:"not null" json:"verifiedPurchase"`
	Date             time.Time `gorm:"not null" json:"date"`
}
