package handlers

import (
	"context"
	"errors"

	"luxreplica-backend/models"
	"luxreplica-backend/storage"
)

func newEmptyStore() *storage.MemStorage {
	return storage.NewMemStorage()
}

var errStoreDown = errors.New("connection refused")

// failingStore fails every read it is asked for. Methods it does not
// override panic through the nil embedded interface.
type failingStore struct {
	storage.Storage
}

func (failingStore) GetCategories(context.Context) ([]models.Category, error) {
	return nil, errStoreDown
}

func (failingStore) GetProducts(context.Context, storage.ProductFilter) ([]models.Product, error) {
	return nil, errStoreDown
}

func (failingStore) GetProductWithDetails(context.Context, string) (*models.ProductWithDetails, error) {
	return nil, errStoreDown
}

func (failingStore) GetCartItems(context.Context, string) ([]models.CartItemWithProduct, error) {
	return nil, errStoreDown
}

func (failingStore) CreateCartItem(context.Context, models.CartItem) (models.CartItem, error) {
	return models.CartItem{}, errStoreDown
}
