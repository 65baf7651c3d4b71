// Package storage holds the catalog and cart collections behind the Storage
// interface. MemStorage keeps everything in process memory; GormStorage keeps
// the same collections in a relational database.
package storage

import (
	"context"
	"errors"

	"luxreplica-backend/models"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// ProductFilter narrows GetProducts. Zero value means no filtering.
//
// An unknown CategorySlug skips the category criterion entirely, so the
// result is not narrowed by category at all.
type ProductFilter struct {
	CategorySlug string
	Featured     *bool
	NewArrival   *bool
	BestSeller   *bool
	TopRated     *bool
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.NewArrival != nil && p.NewArrival != *f.NewArrival {
		return false
	}
	if f.BestSeller != nil && p.BestSeller != *f.BestSeller {
		return false
	}
	if f.TopRated != nil && p.TopRated != *f.TopRated {
		return false
	}
	return true
}

// capQuantity bounds a cart line quantity to models.MaxCartQuantity.
func capQuantity(q int) int {
	if q > models.MaxCartQuantity {
		return models.MaxCartQuantity
	}
	return q
}

type CatalogStore interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	// GetProductWithDetails returns ErrNotFound when either the product or its
	// category cannot be resolved.
	GetProductWithDetails(ctx context.Context, slug string) (*models.ProductWithDetails, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)

	GetProductImages(ctx context.Context, productID int) ([]models.ProductImage, error)
	CreateProductImage(ctx context.Context, image models.ProductImage) (models.ProductImage, error)
	GetProductSizes(ctx context.Context, productID int) ([]models.ProductSize, error)
	CreateProductSize(ctx context.Context, size models.ProductSize) (models.ProductSize, error)
	GetProductColors(ctx context.Context, productID int) ([]models.ProductColor, error)
	CreateProductColor(ctx context.Context, color models.ProductColor) (models.ProductColor, error)
	GetReviews(ctx context.Context, productID int) ([]models.Review, error)
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
}

type CartStore interface {
	// GetCartItems joins each of the session's rows with its product and
	// primary image. Rows whose product is missing, or whose product has no
	// image, are left out of the result rather than reported as errors.
	GetCartItems(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error)
	GetCartItem(ctx context.Context, id int) (*models.CartItem, error)
	// CreateCartItem merges into an existing row with the same session,
	// product, size and color by adding quantities; otherwise it inserts.
	// A quantity below 1 counts as 1.
	CreateCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error)
	// UpdateCartItemQuantity overwrites the quantity. A quantity of 0 or less
	// deletes the row and returns a nil item with a nil error.
	UpdateCartItemQuantity(ctx context.Context, id, quantity int) (*models.CartItem, error)
	// DeleteCartItem is a no-op for unknown ids.
	DeleteCartItem(ctx context.Context, id int) error
	ClearCart(ctx context.Context, sessionID string) error
}

type Storage interface {
	CatalogStore
	CartStore
}
