package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"luxreplica-backend/models"
	"luxreplica-backend/storage"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var catalogYAML []byte

type seedCatalog struct {
	Categories []seedCategory `yaml:"categories"`
}

type seedCategory struct {
	Name     string        `yaml:"name"`
	Slug     string        `yaml:"slug"`
	ImageURL string        `yaml:"imageUrl"`
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name             string   `yaml:"name"`
	Slug             string   `yaml:"slug"`
	Description      string   `yaml:"description"`
	Price            float64  `yaml:"price"`
	OriginalPrice    *float64 `yaml:"originalPrice"`
	InspirationBrand string   `yaml:"inspirationBrand"`
	InStock          bool     `yaml:"inStock"`
	Details          string   `yaml:"details"`
	Comparison       string   `yaml:"comparison"`
	Material         string   `yaml:"material"`
	Featured         bool     `yaml:"featured"`
	NewArrival       bool     `yaml:"newArrival"`
	BestSeller       bool     `yaml:"bestSeller"`
	TopRated         bool     `yaml:"topRated"`

	Images         []seedImage  `yaml:"images"`
	Sizes          []string     `yaml:"sizes"`
	SizesAvailable *bool        `yaml:"sizesAvailable"` // defaults to true
	Colors         []seedColor  `yaml:"colors"`
	Reviews        []seedReview `yaml:"reviews"`
}

type seedImage struct {
	URL     string `yaml:"url"`
	Primary bool   `yaml:"primary"`
}

type seedColor struct {
	Color string `yaml:"color"`
	Name  string `yaml:"name"`
}

type seedReview struct {
	Rating   int    `yaml:"rating"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Author   string `yaml:"author"`
	Verified bool   `yaml:"verified"`
	Date     string `yaml:"date"` // YYYY-MM-DD
}

// SeedCatalog loads the embedded storefront catalog into store. It does
// nothing when the store already holds categories.
func SeedCatalog(ctx context.Context, store storage.CatalogStore) error {
	return SeedCatalogFrom(ctx, store, catalogYAML)
}

// SeedCatalogFrom loads a YAML catalog into store through its create operations.
func SeedCatalogFrom(ctx context.Context, store storage.CatalogStore, data []byte) error {
	existing, err := store.GetCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		zap.S().Infof("catalog already has %d categories, skipping seed", len(existing))
		return nil
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse seed catalog: %w", err)
	}

	products := 0
	for _, sc := range catalog.Categories {
		category, err := store.CreateCategory(ctx, models.Category{
			Name:     sc.Name,
			Slug:     sc.Slug,
			ImageURL: sc.ImageURL,
		})
		if err != nil {
			return fmt.Errorf("seed category %q: %w", sc.Slug, err)
		}

		for _, sp := range sc.Products {
			if err := seedProductRows(ctx, store, category.ID, sp); err != nil {
				return fmt.Errorf("seed product %q: %w", sp.Slug, err)
			}
			products++
		}
	}

	zap.S().Infof("seeded catalog: %d categories, %d products", len(catalog.Categories), products)
	return nil
}

func seedProductRows(ctx context.Context, store storage.CatalogStore, categoryID int, sp seedProduct) error {
	product, err := store.CreateProduct(ctx, models.Product{
		Name:             sp.Name,
		Slug:             sp.Slug,
		Description:      sp.Description,
		Price:            sp.Price,
		OriginalPrice:    sp.OriginalPrice,
		InspirationBrand: sp.InspirationBrand,
		InStock:          sp.InStock,
		CategoryID:       categoryID,
		Details:          sp.Details,
		Comparison:       sp.Comparison,
		Material:         sp.Material,
		Featured:         sp.Featured,
		NewArrival:       sp.NewArrival,
		BestSeller:       sp.BestSeller,
		TopRated:         sp.TopRated,
	})
	if err != nil {
		return err
	}

	for _, img := range sp.Images {
		if _, err := store.CreateProductImage(ctx, models.ProductImage{
			ProductID: product.ID,
			ImageURL:  img.URL,
			IsPrimary: img.Primary,
		}); err != nil {
			return err
		}
	}

	available := sp.SizesAvailable == nil || *sp.SizesAvailable
	for _, size := range sp.Sizes {
		if _, err := store.CreateProductSize(ctx, models.ProductSize{
			ProductID: product.ID,
			Size:      size,
			Available: available,
		}); err != nil {
			return err
		}
	}

	for _, color := range sp.Colors {
		if _, err := store.CreateProductColor(ctx, models.ProductColor{
			ProductID: product.ID,
			Color:     color.Color,
			ColorName: color.Name,
		}); err != nil {
			return err
		}
	}

	for _, r := range sp.Reviews {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return fmt.Errorf("review %q date: %w", r.Title, err)
		}
		if _, err := store.CreateReview(ctx, models.Review{
			ProductID:        product.ID,
			Rating:           r.Rating,
			Title:            r.Title,
			Content:          r.Content,
			AuthorName:       r.Author,
			VerifiedPurchase: r.Verified,
			Date:             date,
		}); err != nil {
			return err
		}
	}

	return nil
}
