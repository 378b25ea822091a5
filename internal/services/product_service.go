package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
	"catalogo/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher delivers product events to other services.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, event models.ProductCreatedEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	validate := validator.New()
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validate,
		log:       log,
		now:       time.Now,
	}
}

// GetAllProducts retrieves all products in creation order.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a single product. Identifiers that are not
// unsigned integers, or do not fit a signed 64-bit column, are reported the
// same way as unknown ones.
func (s *ProductService) GetProductByID(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := strconv.ParseUint(rawID, 10, 63)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", rawID, apperrors.ErrProductNotFound)
	}
	return s.repo.GetByID(ctx, uint(id))
}

// CreateProduct validates the request, stores an active product and
// announces it.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}

	product := req.NewProduct()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, *product)
	return product, nil
}

func (s *ProductService) publishCreated(ctx context.Context, product models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductCreatedEvent{
		EventID:    uuid.New().String(),
		Type:       models.ProductCreatedEventType,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishProductCreated(ctx, event); err != nil {
		s.log.Warn("failed to publish product created event",
			zap.Uint("product_id", product.ID),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("published product created event",
		zap.Uint("product_id", product.ID),
		zap.String("event_id", event.EventID),
	)
}
