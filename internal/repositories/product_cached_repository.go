package repositories

import (
	"context"

	"catalogo/internal/models"

	"go.uber.org/zap"
)

// ProductCache stores single products by ID.
// Get reports found=false on a miss.
type ProductCache interface {
	Get(ctx context.Context, id uint) (product *models.Product, found bool, err error)
	Set(ctx context.Context, product *models.Product) error
}

// CachedProductRepository is a read-through cache in front of another ProductRepository.
// Products are never updated, so cached entries need no invalidation.
type CachedProductRepository struct {
	next  ProductRepository
	cache ProductCache
	log   *zap.Logger
}

// NewCachedProductRepository wraps next with cache.
func NewCachedProductRepository(next ProductRepository, cache ProductCache, log *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		next:  next,
		cache: cache,
		log:   log,
	}
}

func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.next.GetAll(ctx)
}

// GetByID serves from cache when possible. Cache failures fall through to the store.
func (r *CachedProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, found, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("product cache read failed", zap.Uint("id", id), zap.Error(err))
	} else if found {
		return product, nil
	}

	product, err = r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, product); err != nil {
		r.log.Warn("product cache write failed", zap.Uint("id", id), zap.Error(err))
	}
	return product, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.next.Create(ctx, product)
}
