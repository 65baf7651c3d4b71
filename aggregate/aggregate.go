// Package aggregate derives the computed views served alongside store rows:
// product ratings, rating histograms, related products and cart totals.
// Nothing here mutates state.
package aggregate

import (
	"luxreplica-backend/models"

	"github.com/shopspring/decimal"
)

// RelatedProductsLimit caps how many related products a detail view carries.
const RelatedProductsLimit = 4

// RatingBucket is one row of a rating breakdown.
type RatingBucket struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

// Rating returns the mean star rating of reviews, or 0 when there are none.
func Rating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	mean, _ := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Float64()
	return mean
}

// RatingBreakdown counts reviews per star value, 5 down to 1. It always
// returns five buckets.
func RatingBreakdown(reviews []models.Review) []RatingBucket {
	buckets := make([]RatingBucket, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		count := 0
		for _, r := range reviews {
			if r.Rating == stars {
				count++
			}
		}
		buckets = append(buckets, RatingBucket{Stars: stars, Count: count})
	}
	return buckets
}

// PrimaryImage picks the image flagged primary, falling back to the first
// image. ok is false when images is empty.
func PrimaryImage(images []models.ProductImage) (img models.ProductImage, ok bool) {
	if len(images) == 0 {
		return models.ProductImage{}, false
	}
	for _, image := range images {
		if image.IsPrimary {
			return image, true
		}
	}
	return images[0], true
}

// RelatedProducts returns up to limit candidates sharing product's category,
// excluding product itself, in candidate order.
func RelatedProducts(product models.Product, candidates []models.Product, limit int) []models.Product {
	related := make([]models.Product, 0, limit)
	for _, p := range candidates {
		if len(related) >= limit {
			break
		}
		if p.ID == product.ID || p.CategoryID != product.CategoryID {
			continue
		}
		related = append(related, p)
	}
	return related
}

// Totals summarises a cart.
type Totals struct {
	Subtotal float64
	Total    float64
	Count    int
}

// CartTotals sums price times quantity into the subtotal and quantities into
// the count. Total equals the subtotal; no tax, shipping or discounts apply.
func CartTotals(items []models.CartItemWithProduct) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		line := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		count += item.Quantity
	}
	amount, _ := subtotal.Float64()
	return Totals{Subtotal: amount, Total: amount, Count: count}
}
