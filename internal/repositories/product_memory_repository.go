package repositories

import (
	"context"
	"fmt"
	"sync"

	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// The name check and insert happen under one lock.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[uint]int
	byName   map[string]struct{}
	lastID   uint
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		byID:   make(map[uint]int),
		byName: make(map[string]struct{}),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, apperrors.ErrProductNotFound)
	}
	product := r.products[idx]
	return &product, nil
}

// Create adds a new product and assigns the next ID.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[product.Nombre]; taken {
		return fmt.Errorf("product %q: %w", product.Nombre, apperrors.ErrDuplicateName)
	}
	r.lastID++
	product.ID = r.lastID
	r.byID[product.ID] = len(r.products)
	r.byName[product.Nombre] = struct{}{}
	r.products = append(r.products, *product)
	return nil
}
