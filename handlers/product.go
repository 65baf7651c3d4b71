package handlers

import (
	"context"
	"errors"
	"net/http"

	"luxreplica-backend/aggregate"
	"luxreplica-backend/dtos"
	"luxreplica-backend/models"
	"luxreplica-backend/storage"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Store storage.CatalogStore
}

// productFilter maps the list query onto a store filter. Unknown filter
// values select nothing extra.
func productFilter(category, filter string) storage.ProductFilter {
	f := storage.ProductFilter{CategorySlug: category}
	yes := true
	switch filter {
	case "featured":
		f.Featured = &yes
	case "new":
		f.NewArrival = &yes
	case "bestsellers":
		f.BestSeller = &yes
	case "toprated":
		f.TopRated = &yes
	}
	return f
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.Store.GetProducts(ctx, productFilter(c.Query("category"), c.Query("filter")))
	if err != nil {
		respondInternal(c, err, "Failed to fetch products")
		return
	}

	listings, err := h.listings(ctx, products)
	if err != nil {
		respondInternal(c, err, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, listings)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()

	details, err := h.Store.GetProductWithDetails(ctx, c.Param("slug"))
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondInternal(c, err, "Failed to fetch product")
		return
	}

	candidates, err := h.Store.GetProducts(ctx, storage.ProductFilter{CategorySlug: details.Category.Slug})
	if err != nil {
		respondInternal(c, err, "Failed to fetch product")
		return
	}
	related, err := h.listings(ctx, aggregate.RelatedProducts(details.Product, candidates, aggregate.RelatedProductsLimit))
	if err != nil {
		respondInternal(c, err, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, dtos.NewProductDetail(*details, related))
}

// listings annotates products with their display image and rating.
func (h *ProductHandler) listings(ctx context.Context, products []models.Product) ([]dtos.ProductListing, error) {
	listings := make([]dtos.ProductListing, 0, len(products))
	for _, p := range products {
		images, err := h.Store.GetProductImages(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		reviews, err := h.Store.GetReviews(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		listings = append(listings, dtos.NewProductListing(p, images, reviews))
	}
	return listings, nil
}
