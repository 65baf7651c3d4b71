package dtos

import (
	"luxreplica-backend/aggregate"
	"luxreplica-backend/models"
)

// ProductListing is a product as shown in lists: its display image, review
// count and mean rating. Image is omitted when the product has none.
type ProductListing struct {
	models.Product
	Image       *models.ProductImage `json:"image,omitempty"`
	ReviewCount int                  `json:"reviewCount"`
	Rating      float64              `json:"rating"`
}

func NewProductListing(product models.Product, images []models.ProductImage, reviews []models.Review) ProductListing {
	listing := ProductListing{
		Product:     product,
		ReviewCount: len(reviews),
		Rating:      aggregate.Rating(reviews),
	}
	if image, ok := aggregate.PrimaryImage(images); ok {
		listing.Image = &image
	}
	return listing
}

// ProductDetail is the product page payload.
type ProductDetail struct {
	models.ProductWithDetails
	Rating          float64                  `json:"rating"`
	RatingBreakdown []aggregate.RatingBucket `json:"ratingBreakdown"`
	RelatedProducts []ProductListing         `json:"relatedProducts"`
}

func NewProductDetail(details models.ProductWithDetails, related []ProductListing) ProductDetail {
	if related == nil {
		related = []ProductListing{}
	}
	return ProductDetail{
		ProductWithDetails: details,
		Rating:             aggregate.Rating(details.Reviews),
		RatingBreakdown:    aggregate.RatingBreakdown(details.Reviews),
		RelatedProducts:    related,
	}
}
