package repositories

import (
	"context"

	"catalogo/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations return apperrors.ErrDuplicateName and apperrors.ErrProductNotFound
// for the conflict and missing cases.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}
