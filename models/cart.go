package models

// MaxCartQuantity is the largest quantity a single cart line can hold.
const MaxCartQuantity = 9999

type CartItem struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	SessionID string  `gorm:"not null;index" json:"sessionId"`
	ProductID int     `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// SameLine reports whether other describes the same cart line: same session,
// product, size and color. An absent size or color only matches another absent one.
func (c CartItem) SameLine(other CartItem) bool {
	return c.SessionID == other.SessionID &&
		c.ProductID == other.ProductID &&
		equalOption(c.Size, other.Size) &&
		equalOption(c.Color, other.Color)
}

func equalOption(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CartItemWithProduct is a cart row joined with its product and display image.
type CartItemWithProduct struct {
	CartItem
	Product Product      `json:"product"`
	Image   ProductImage `json:"image"`
}
