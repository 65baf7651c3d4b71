package storage

import (
	"context"
	"sync"
	"testing"

	"luxreplica-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterStartsAtOne(t *testing.T) {
	var c Counter
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 3, c.Next())
}

func TestCounterIsUniqueUnderConcurrency(t *testing.T) {
	var c Counter
	const n = 200

	var mu sync.Mutex
	seen := make(map[int]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := c.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "missing id %d", i)
	}
}

// stepSequence hands out start, start+step, start+2*step...
type stepSequence struct {
	mu         sync.Mutex
	next, step int
}

func (s *stepSequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next += s.step
	return id
}

func TestMemStorageWithSequences(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage(WithSequences(func() Sequence {
		return &stepSequence{next: 100, step: 10}
	}))

	first, err := s.CreateCategory(ctx, models.Category{Name: "Hoodies", Slug: "hoodies"})
	require.NoError(t, err)
	second, err := s.CreateCategory(ctx, models.Category{Name: "Pants", Slug: "pants"})
	require.NoError(t, err)
	assert.Equal(t, 100, first.ID)
	assert.Equal(t, 110, second.ID)

	// Each collection owns its own sequence.
	product, err := s.CreateProduct(ctx, models.Product{Name: "Hoodie", Slug: "hoodie", CategoryID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, 100, product.ID)

	item, err := s.CreateCartItem(ctx, models.CartItem{SessionID: "s1", ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 100, item.ID)

	got, err := s.GetCartItem(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, item, *got)
}

func TestMemStorageIgnoresCallerIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	category, err := s.CreateCategory(ctx, models.Category{ID: 77, Name: "Hoodies", Slug: "hoodies"})
	require.NoError(t, err)
	assert.Equal(t, 1, category.ID)

	_, err = s.GetCategoryBySlug(ctx, "hoodies")
	require.NoError(t, err)
}

func TestMemStorageFiltersByCategoryWithIDZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage(WithSequences(func() Sequence {
		return &stepSequence{next: 0, step: 1}
	}))

	hoodies, err := s.CreateCategory(ctx, models.Category{Name: "Hoodies", Slug: "hoodies"})
	require.NoError(t, err)
	require.Equal(t, 0, hoodies.ID)
	pants, err := s.CreateCategory(ctx, models.Category{Name: "Pants", Slug: "pants"})
	require.NoError(t, err)

	hoodie, err := s.CreateProduct(ctx, models.Product{Name: "Hoodie", Slug: "hoodie", CategoryID: hoodies.ID})
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, models.Product{Name: "Cargo", Slug: "cargo", CategoryID: pants.ID})
	require.NoError(t, err)

	products, err := s.GetProducts(ctx, ProductFilter{CategorySlug: "hoodies"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, hoodie.ID, products[0].ID)
}
