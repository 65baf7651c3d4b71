package dtos

import (
	"luxreplica-backend/aggregate"
	"luxreplica-backend/models"
)

// AddToCartRequest is the body of POST /api/cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID int     `json:"productId" binding:"required,min=1"`
	Quantity  *int    `json:"quantity" binding:"omitempty,min=1,max=9999"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// CartItem converts the request into a row for sessionID.
func (r AddToCartRequest) CartItem(sessionID string) models.CartItem {
	quantity := 1
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return models.CartItem{
		SessionID: sessionID,
		ProductID: r.ProductID,
		Quantity:  quantity,
		Size:      r.Size,
		Color:     r.Color,
	}
}

// UpdateCartItemRequest is the body of PUT /api/cart/:id. Zero removes the item.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=9999"`
}

// CartSnapshot is the cart state returned by every cart endpoint.
type CartSnapshot struct {
	Items    []models.CartItemWithProduct `json:"items"`
	Subtotal float64                      `json:"subtotal"`
	Total    float64                      `json:"total"`
	Count    int                          `json:"count"`
}

func NewCartSnapshot(items []models.CartItemWithProduct) CartSnapshot {
	if items == nil {
		items = []models.CartItemWithProduct{}
	}
	totals := aggregate.CartTotals(items)
	return CartSnapshot{
		Items:    items,
		Subtotal: totals.Subtotal,
		Total:    totals.Total,
		Count:    totals.Count,
	}
}
