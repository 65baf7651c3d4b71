package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"luxreplica-backend/aggregate"
	"luxreplica-backend/models"

	"gorm.io/gorm"
)

// GormStorage keeps the collections in a relational database. Tables are
// created by database.Migrate.
type GormStorage struct {
	DB *gorm.DB

	// cartMu serialises cart writes within this process so a merge never
	// races a delete or update of the row it merges into.
	cartMu sync.Mutex
}

var _ Storage = (*GormStorage)(nil)

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{DB: db}
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Categories

func (s *GormStorage) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

func (s *GormStorage) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).Where("slug = ?", slug).Order("id").First(&category).Error; err != nil {
		return nil, notFound(err, "category %q", slug)
	}
	return &category, nil
}

func (s *GormStorage) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.ID = 0
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Products

func (s *GormStorage) GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.DB.WithContext(ctx).Model(&models.Product{})

	if filter.CategorySlug != "" {
		category, err := s.GetCategoryBySlug(ctx, filter.CategorySlug)
		switch {
		case err == nil:
			query = query.Where("category_id = ?", category.ID)
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.NewArrival != nil {
		query = query.Where("new_arrival = ?", *filter.NewArrival)
	}
	if filter.BestSeller != nil {
		query = query.Where("best_seller = ?", *filter.BestSeller)
	}
	if filter.TopRated != nil {
		query = query.Where("top_rated = ?", *filter.TopRated)
	}

	products := []models.Product{}
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (s *GormStorage) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err, "product %d", id)
	}
	return &product, nil
}

func (s *GormStorage) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("slug = ?", slug).Order("id").First(&product).Error; err != nil {
		return nil, notFound(err, "product %q", slug)
	}
	return &product, nil
}

func (s *GormStorage) GetProductWithDetails(ctx context.Context, slug string) (*models.ProductWithDetails, error) {
	product, err := s.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.DB.WithContext(ctx).Where("id = ?", product.CategoryID).First(&category).Error; err != nil {
		return nil, notFound(err, "category %d of product %q", product.CategoryID, slug)
	}

	details := &models.ProductWithDetails{Product: *product, Category: category}
	if details.Images, err = s.GetProductImages(ctx, product.ID); err != nil {
		return nil, err
	}
	if details.Sizes, err = s.GetProductSizes(ctx, product.ID); err != nil {
		return nil, err
	}
	if details.Colors, err = s.GetProductColors(ctx, product.ID); err != nil {
		return nil, err
	}
	if details.Reviews, err = s.GetReviews(ctx, product.ID); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GormStorage) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = 0
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Images, sizes, colors and reviews

func (s *GormStorage) GetProductImages(ctx context.Context, productID int) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("fetch images of product %d: %w", productID, err)
	}
	return images, nil
}

func (s *GormStorage) CreateProductImage(ctx context.Context, image models.ProductImage) (models.ProductImage, error) {
	image.ID = 0
	if err := s.DB.WithContext(ctx).Create(&image).Error; err != nil {
		return models.ProductImage{}, fmt.Errorf("create product image: %w", err)
	}
	return image, nil
}

func (s *GormStorage) GetProductSizes(ctx context.Context, productID int) ([]models.ProductSize, error) {
	sizes := []models.ProductSize{}
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("fetch sizes of product %d: %w", productID, err)
	}
	return sizes, nil
}

func (s *GormStorage) CreateProductSize(ctx context.Context, size models.ProductSize) (models.ProductSize, error) {
	size.ID = 0
	if err := s.DB.WithContext(ctx).Create(&size).Error; err != nil {
		return models.ProductSize{}, fmt.Errorf("create product size: %w", err)
	}
	return size, nil
}

func (s *GormStorage) GetProductColors(ctx context.Context, productID int) ([]models.ProductColor, error) {
	colors := []models.ProductColor{}
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&colors).Error; err != nil {
		return nil, fmt.Errorf("fetch colors of product %d: %w", productID, err)
	}
	return colors, nil
}

func (s *GormStorage) CreateProductColor(ctx context.Context, color models.ProductColor) (models.ProductColor, error) {
	color.ID = 0
	if err := s.DB.WithContext(ctx).Create(&color).Error; err != nil {
		return models.ProductColor{}, fmt.Errorf("create product color: %w", err)
	}
	return color, nil
}

func (s *GormStorage) GetReviews(ctx context.Context, productID int) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("fetch reviews of product %d: %w", productID, err)
	}
	return reviews, nil
}

func (s *GormStorage) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	review.ID = 0
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return models.Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// Cart

func (s *GormStorage) GetCartItems(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}

	result := make([]models.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.GetProductByID(ctx, item.ProductID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		images, err := s.GetProductImages(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		image, ok := aggregate.PrimaryImage(images)
		if !ok {
			continue
		}
		result = append(result, models.CartItemWithProduct{CartItem: item, Product: *product, Image: image})
	}
	return result, nil
}

func (s *GormStorage) GetCartItem(ctx context.Context, id int) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err, "cart item %d", id)
	}
	return &item, nil
}

// optionEquals matches a nullable column against an optional value, treating
// NULL as equal to an absent value.
func optionEquals(tx *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return tx.Where(column + " IS NULL")
	}
	return tx.Where(column+" = ?", *value)
}

func (s *GormStorage) CreateCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.Quantity = capQuantity(item.Quantity)
	item.ID = 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("session_id = ? AND product_id = ?", item.SessionID, item.ProductID)
		query = optionEquals(query, "size", item.Size)
		query = optionEquals(query, "color", item.Color)

		var existing models.CartItem
		err := query.Order("id").First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		existing.Quantity = capQuantity(existing.Quantity + item.Quantity)
		if err := tx.Model(&existing).Update("quantity", existing.Quantity).Error; err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return models.CartItem{}, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

func (s *GormStorage) UpdateCartItemQuantity(ctx context.Context, id, quantity int) (*models.CartItem, error) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	item, err := s.GetCartItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, s.deleteCartItem(ctx, id)
	}

	quantity = capQuantity(quantity)
	if err := s.DB.WithContext(ctx).Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("update cart item %d: %w", id, err)
	}
	item.Quantity = quantity
	return item, nil
}

func (s *GormStorage) DeleteCartItem(ctx context.Context, id int) error {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	return s.deleteCartItem(ctx, id)
}

func (s *GormStorage) deleteCartItem(ctx context.Context, id int) error {
	if err := s.DB.WithContext(ctx).Delete(&models.CartItem{}, id).Error; err != nil {
		return fmt.Errorf("delete cart item %d: %w", id, err)
	}
	return nil
}

func (s *GormStorage) ClearCart(ctx context.Context, sessionID string) error {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	if err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
