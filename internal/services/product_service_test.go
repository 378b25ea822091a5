package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductCreated(ctx context.Context, event models.ProductCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func sodaRequest() models.CreateProductRequest {
	return models.CreateProductRequest{
		Nombre:      "soda",
		Cantidad:    intPtr(12),
		Precio:      floatPtr(0.12),
		Descripcion: "esta rico",
		Categoria:   "Galletas",
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProducts := []models.Product{
		{ID: 1, Nombre: "soda", Cantidad: 12, Precio: 0.12, Active: true},
		{ID: 2, Nombre: "soda field", Cantidad: 20, Precio: 0.7, Active: true},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProducts_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	mockRepo.On("GetAll", ctx).Return(nil, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProduct := &models.Product{ID: 1, Nombre: "soda", Active: true}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", ctx, uint(999)).Return(nil, fmt.Errorf("product with ID 999: %w", apperrors.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(ctx, "999")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID_Malformed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	for _, id := range []string{"blah", "", "-1", "1.5", "9223372036854775808", "18446744073709551615", "99999999999999999999999"} {
		product, err := service.GetProductByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound, "id %q", id)
		assert.Nil(t, product)
	}
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 7
		}).
		Return(nil).Once()

	product, err := service.CreateProduct(ctx, sodaRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	assert.True(t, product.Active)
	assert.Equal(t, map[string]interface{}{
		"id":          uint(7),
		"nombre":      "soda",
		"cantidad":    12,
		"precio":      0.12,
		"descripcion": "esta rico",
		"categoria":   "Galletas",
		"active":      true,
	}, product.ToMap())
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ZeroValuesAccepted(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	req := sodaRequest()
	req.Cantidad = intPtr(0)
	req.Precio = floatPtr(0)
	product, err := service.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Cantidad)
	assert.Equal(t, 0.0, product.Precio)
}

func TestProductService_CreateProduct_InvalidPayload(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(r *models.CreateProductRequest){
		"empty":            func(r *models.CreateProductRequest) { *r = models.CreateProductRequest{} },
		"only name":        func(r *models.CreateProductRequest) { *r = models.CreateProductRequest{Nombre: "soda"} },
		"missing cantidad": func(r *models.CreateProductRequest) { r.Cantidad = nil },
		"missing precio":   func(r *models.CreateProductRequest) { r.Precio = nil },
		"empty categoria":  func(r *models.CreateProductRequest) { r.Categoria = "" },
		"blank nombre":     func(r *models.CreateProductRequest) { r.Nombre = "   " },
		"blank categoria":  func(r *models.CreateProductRequest) { r.Categoria = "\t\n" },
		"long descripcion": func(r *models.CreateProductRequest) {
			r.Descripcion = string(make([]byte, 129))
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo, nil, zap.NewNop())

			req := sodaRequest()
			mutate(&req)
			product, err := service.CreateProduct(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
			assert.Nil(t, product)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateProduct_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, nil, zap.NewNop())

	_, err := service.CreateProduct(ctx, sodaRequest())
	require.NoError(t, err)

	second := sodaRequest()
	second.Descripcion = "estado rico"
	product, err := service.CreateProduct(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)
	assert.Nil(t, product)

	products, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "esta rico", products[0].Descripcion)
}

func TestProductService_CreateProduct_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	publisher := new(MockPublisher)
	service := services.NewProductService(repo, publisher, zap.NewNop())

	publisher.On("PublishProductCreated", ctx, mock.MatchedBy(func(e models.ProductCreatedEvent) bool {
		return e.Type == models.ProductCreatedEventType &&
			e.EventID != "" &&
			e.Product.ID == 1 &&
			e.Product.Nombre == "soda" &&
			!e.OccurredAt.IsZero()
	})).Return(nil).Once()

	_, err := service.CreateProduct(ctx, sodaRequest())
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIsNotReturned(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	publisher := new(MockPublisher)
	service := services.NewProductService(repo, publisher, zap.NewNop())

	publisher.On("PublishProductCreated", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	product, err := service.CreateProduct(ctx, sodaRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)

	stored, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "soda", stored.Nombre)
}

func TestProductService_CreateProduct_NoEventOnConflict(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, zap.NewNop())

	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("product %q: %w", "soda", apperrors.ErrDuplicateName)).Once()

	_, err := service.CreateProduct(ctx, sodaRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)
	publisher.AssertNotCalled(t, "PublishProductCreated", mock.Anything, mock.Anything)
}
