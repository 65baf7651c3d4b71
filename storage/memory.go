package storage

import (
	"context"
	"fmt"
	"sync"

	"luxreplica-backend/aggregate"
	"luxreplica-backend/models"
)

// table is an id-keyed collection that remembers insertion order.
type table[T any] struct {
	rows  map[int]T
	order []int
	seq   Sequence
}

func newTable[T any](seq Sequence) *table[T] {
	return &table[T]{rows: make(map[int]T), seq: seq}
}

func (t *table[T]) put(id int, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id int) {
	if _, exists := t.rows[id]; !exists {
		return
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// filter returns matching rows in insertion order. It never returns nil.
func (t *table[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// MemStorage keeps every collection in process memory. All methods are safe
// for concurrent use; one lock guards all collections so the cart merge's
// scan-then-write runs atomically.
type MemStorage struct {
	mu sync.RWMutex

	categories    *table[models.Category]
	products      *table[models.Product]
	productImages *table[models.ProductImage]
	productSizes  *table[models.ProductSize]
	productColors *table[models.ProductColor]
	reviews       *table[models.Review]
	cartItems     *table[models.CartItem]
}

var _ Storage = (*MemStorage)(nil)

type MemOption func(*memOptions)

type memOptions struct {
	newSequence func() Sequence
}

// WithSequences makes every collection allocate ids from a Sequence built by
// newSequence instead of a fresh Counter.
func WithSequences(newSequence func() Sequence) MemOption {
	return func(o *memOptions) {
		o.newSequence = newSequence
	}
}

func NewMemStorage(opts ...MemOption) *MemStorage {
	o := memOptions{newSequence: func() Sequence { return &Counter{} }}
	for _, opt := range opts {
		opt(&o)
	}

	return &MemStorage{
		categories:    newTable[models.Category](o.newSequence()),
		products:      newTable[models.Product](o.newSequence()),
		productImages: newTable[models.ProductImage](o.newSequence()),
		productSizes:  newTable[models.ProductSize](o.newSequence()),
		productColors: newTable[models.ProductColor](o.newSequence()),
		reviews:       newTable[models.Review](o.newSequence()),
		cartItems:     newTable[models.CartItem](o.newSequence()),
	}
}

// Categories

func (s *MemStorage) GetCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.filter(nil), nil
}

func (s *MemStorage) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryBySlug(slug)
}

func (s *MemStorage) categoryBySlug(slug string) (*models.Category, error) {
	matches := s.categories.filter(func(c models.Category) bool { return c.Slug == slug })
	if len(matches) == 0 {
		return nil, fmt.Errorf("category %q: %w", slug, ErrNotFound)
	}
	return &matches[0], nil
}

func (s *MemStorage) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.categories.seq.Next()
	s.categories.put(category.ID, category)
	return category, nil
}

// Products

func (s *MemStorage) GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var category *models.Category
	if filter.CategorySlug != "" {
		category, _ = s.categoryBySlug(filter.CategorySlug)
	}

	return s.products.filter(func(p models.Product) bool {
		if category != nil && p.CategoryID != category.ID {
			return false
		}
		return filter.matches(p)
	}), nil
}

func (s *MemStorage) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products.get(id)
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

func (s *MemStorage) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productBySlug(slug)
}

func (s *MemStorage) productBySlug(slug string) (*models.Product, error) {
	matches := s.products.filter(func(p models.Product) bool { return p.Slug == slug })
	if len(matches) == 0 {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}
	return &matches[0], nil
}

func (s *MemStorage) GetProductWithDetails(ctx context.Context, slug string) (*models.ProductWithDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, err := s.productBySlug(slug)
	if err != nil {
		return nil, err
	}
	category, ok := s.categories.get(product.CategoryID)
	if !ok {
		return nil, fmt.Errorf("category %d of product %q: %w", product.CategoryID, slug, ErrNotFound)
	}

	return &models.ProductWithDetails{
		Product:  *product,
		Images:   s.imagesOf(product.ID),
		Sizes:    s.productSizes.filter(func(z models.ProductSize) bool { return z.ProductID == product.ID }),
		Colors:   s.productColors.filter(func(c models.ProductColor) bool { return c.ProductID == product.ID }),
		Reviews:  s.reviews.filter(func(r models.Review) bool { return r.ProductID == product.ID }),
		Category: category,
	}, nil
}

func (s *MemStorage) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.products.seq.Next()
	s.products.put(product.ID, product)
	return product, nil
}

// Images, sizes, colors and reviews

func (s *MemStorage) GetProductImages(ctx context.Context, productID int) ([]models.ProductImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imagesOf(productID), nil
}

func (s *MemStorage) imagesOf(productID int) []models.ProductImage {
	return s.productImages.filter(func(i models.ProductImage) bool { return i.ProductID == productID })
}

func (s *MemStorage) CreateProductImage(ctx context.Context, image models.ProductImage) (models.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	image.ID = s.productImages.seq.Next()
	s.productImages.put(image.ID, image)
	return image, nil
}

func (s *MemStorage) GetProductSizes(ctx context.Context, productID int) ([]models.ProductSize, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productSizes.filter(func(z models.ProductSize) bool { return z.ProductID == productID }), nil
}

func (s *MemStorage) CreateProductSize(ctx context.Context, size models.ProductSize) (models.ProductSize, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	size.ID = s.productSizes.seq.Next()
	s.productSizes.put(size.ID, size)
	return size, nil
}

func (s *MemStorage) GetProductColors(ctx context.Context, productID int) ([]models.ProductColor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productColors.filter(func(c models.ProductColor) bool { return c.ProductID == productID }), nil
}

func (s *MemStorage) CreateProductColor(ctx context.Context, color models.ProductColor) (models.ProductColor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	color.ID = s.productColors.seq.Next()
	s.productColors.put(color.ID, color)
	return color, nil
}

func (s *MemStorage) GetReviews(ctx context.Context, productID int) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.filter(func(r models.Review) bool { return r.ProductID == productID }), nil
}

func (s *MemStorage) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.reviews.seq.Next()
	s.reviews.put(review.ID, review)
	return review, nil
}

// Cart

func (s *MemStorage) GetCartItems(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.cartItems.filter(func(i models.CartItem) bool { return i.SessionID == sessionID })
	result := make([]models.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, ok := s.products.get(item.ProductID)
		if !ok {
			continue
		}
		image, ok := aggregate.PrimaryImage(s.imagesOf(product.ID))
		if !ok {
			continue
		}
		result = append(result, models.CartItemWithProduct{CartItem: item, Product: product, Image: image})
	}
	return result, nil
}

func (s *MemStorage) GetCartItem(ctx context.Context, id int) (*models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.cartItems.get(id)
	if !ok {
		return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

func (s *MemStorage) CreateCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.Quantity = capQuantity(item.Quantity)

	existing := s.cartItems.filter(item.SameLine)
	if len(existing) > 0 {
		merged := existing[0]
		merged.Quantity = capQuantity(merged.Quantity + item.Quantity)
		s.cartItems.put(merged.ID, merged)
		return merged, nil
	}

	item.ID = s.cartItems.seq.Next()
	s.cartItems.put(item.ID, item)
	return item, nil
}

func (s *MemStorage) UpdateCartItemQuantity(ctx context.Context, id, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems.get(id)
	if !ok {
		return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	if quantity <= 0 {
		s.cartItems.remove(id)
		return nil, nil
	}
	item.Quantity = capQuantity(quantity)
	s.cartItems.put(id, item)
	return &item, nil
}

func (s *MemStorage) DeleteCartItem(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems.remove(id)
	return nil
}

func (s *MemStorage) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.cartItems.filter(func(i models.CartItem) bool { return i.SessionID == sessionID }) {
		s.cartItems.remove(item.ID)
	}
	return nil
}
