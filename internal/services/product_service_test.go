package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"catalog/internal/apperr"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
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

func (m *MockProductRepository) Update(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func price(v float64) *float64 { return &v }

func stock(v int) *int { return &v }

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Desk Lamp",
		Price:       price(24.5),
		Description: "LED lamp with adjustable arm",
		Category:    "Home & Kitchen",
		ImageURL:    "https://example.com/lamp.jpg",
	}
}

func existing(id string) *models.Product {
	return &models.Product{
		ID: id,
		ProductFields: models.ProductFields{
			Name:        "Desk Lamp",
			Price:       24.5,
			Description: "LED lamp with adjustable arm",
			Category:    models.CategoryHomeKitchen,
			ImageURL:    "https://example.com/lamp.jpg",
		},
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{*existing("1"), *existing("2")}
	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	// Store failure surfaces as a storage error
	mockRepo.On("GetAll", mock.Anything).Return(nil, fmt.Errorf("connection reset")).Once()
	products, err = service.GetAllProducts(ctx)
	assert.Nil(t, products)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.Contains(t, err.Error(), "connection reset")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "1").Return(existing("1"), nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, existing("1"), product)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.Nil(t, product)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, apperr.MsgNotFound, err.Error())
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, services.WithPublisher(publisher))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = "generated"
		}).
		Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ProductEvent) bool {
		return e.Type == events.ProductCreated && e.ProductID == "generated"
	})).Return(nil).Once()

	product, err := service.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "generated", product.ID)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.Equal(t, models.CategoryHomeKitchen, product.Category)
	assert.Equal(t, 0, product.Stock, "stock defaults to 0 when omitted")
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductStoreFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, services.WithPublisher(publisher))

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error")).Once()

	product, err := service.CreateProduct(context.Background(), validInput())
	assert.Nil(t, product)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.Contains(t, err.Error(), "database error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_CreateProductPublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, services.WithPublisher(publisher))

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	product, err := service.CreateProduct(context.Background(), validInput())
	assert.NoError(t, err)
	assert.NotNil(t, product)
}

func TestProductService_PublishIsBounded(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo,
		services.WithPublisher(publisher),
		services.WithPublishTimeout(50*time.Millisecond),
	)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline
	}), mock.Anything).
		Run(func(args mock.Arguments) {
			// A broker that never answers.
			<-args.Get(0).(context.Context).Done()
		}).
		Return(context.DeadlineExceeded).Once()

	start := time.Now()
	product, err := service.CreateProduct(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotNil(t, product)
	assert.Less(t, time.Since(start), 2*time.Second)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(in *services.ProductInput)
		message     string
		invalidKeys []string
	}{
		{
			name:        "missing name",
			mutate:      func(in *services.ProductInput) { in.Name = "" },
			message:     apperr.MsgMissingFields,
			invalidKeys: []string{"name"},
		},
		{
			name:        "missing price",
			mutate:      func(in *services.ProductInput) { in.Price = nil },
			message:     apperr.MsgMissingFields,
			invalidKeys: []string{"price"},
		},
		{
			name:        "zero price counts as missing",
			mutate:      func(in *services.ProductInput) { in.Price = price(0) },
			message:     apperr.MsgMissingFields,
			invalidKeys: []string{"price"},
		},
		{
			name: "several missing fields",
			mutate: func(in *services.ProductInput) {
				in.Description = ""
				in.Category = ""
				in.ImageURL = ""
			},
			message:     apperr.MsgMissingFields,
			invalidKeys: []string{"description", "category", "imageUrl"},
		},
		{
			name:        "negative price",
			mutate:      func(in *services.ProductInput) { in.Price = price(-1) },
			message:     apperr.MsgInvalidFields,
			invalidKeys: []string{"price"},
		},
		{
			name:        "negative stock",
			mutate:      func(in *services.ProductInput) { in.Stock = stock(-3) },
			message:     apperr.MsgInvalidFields,
			invalidKeys: []string{"stock"},
		},
		{
			name:        "unknown category",
			mutate:      func(in *services.ProductInput) { in.Category = "Groceries" },
			message:     apperr.MsgInvalidFields,
			invalidKeys: []string{"category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo)

			input := validInput()
			tt.mutate(&input)

			product, err := service.CreateProduct(context.Background(), input)
			assert.Nil(t, product)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Len(t, appErr.Fields, len(tt.invalidKeys))
			for _, key := range tt.invalidKeys {
				assert.Contains(t, appErr.Fields, key)
			}
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateProductZeroPriceAllowed(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, services.WithZeroPriceAllowed(true))

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	input := validInput()
	input.Price = price(0)
	product, err := service.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	assert.Zero(t, product.Price)

	// A missing price is still rejected.
	input.Price = nil
	_, err = service.CreateProduct(context.Background(), input)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, services.WithPublisher(publisher))

	input := services.ProductInput{
		Name:     "Desk Lamp v2",
		Price:    price(29),
		Category: "Home & Kitchen",
		Stock:    stock(7),
		ImageURL: "https://example.com/lamp2.jpg",
	}
	// Description is absent and must be written as empty, not merged.
	expectedFields := models.ProductFields{
		Name:     "Desk Lamp v2",
		Price:    29,
		Category: models.CategoryHomeKitchen,
		Stock:    7,
		ImageURL: "https://example.com/lamp2.jpg",
	}
	updated := &models.Product{ID: "1", ProductFields: expectedFields}

	mockRepo.On("GetByID", mock.Anything, "1").Return(existing("1"), nil).Once()
	mockRepo.On("Update", mock.Anything, "1", expectedFields).Return(updated, nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ProductEvent) bool {
		return e.Type == events.ProductUpdated && e.ProductID == "1"
	})).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, "1", input)
	require.NoError(t, err)
	assert.Equal(t, expectedFields, product.ProductFields)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, repositories.ErrProductNotFound).Once()

	product, err := service.UpdateProduct(context.Background(), "99", validInput())
	assert.Nil(t, product)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductRejectsNegativeStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "1").Return(existing("1"), nil).Once()

	input := validInput()
	input.Stock = stock(-1)
	_, err := service.UpdateProduct(context.Background(), "1", input)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, services.WithPublisher(publisher))

	mockRepo.On("GetByID", mock.Anything, "1").Return(existing("1"), nil).Once()
	mockRepo.On("Delete", mock.Anything, "1").Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ProductEvent) bool {
		return e.Type == events.ProductDeleted && e.ProductID == "1" && e.Product == nil
	})).Return(nil).Once()

	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	// Deleting an unknown product has no side effects
	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, repositories.ErrProductNotFound).Once()
	err := service.DeleteProduct(ctx, "99")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, "99")

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_AuthorizerRejects(t *testing.T) {
	mockRepo := new(MockProductRepository)
	var seen []services.Action
	deny := services.AuthorizerFunc(func(ctx context.Context, action services.Action) error {
		seen = append(seen, action)
		if action.Mutating() {
			return errors.New("read-only catalog")
		}
		return nil
	})
	service := services.NewProductService(mockRepo, services.WithAuthorizer(deny))

	mockRepo.On("GetAll", mock.Anything).Return([]models.Product{}, nil).Once()
	_, err := service.GetAllProducts(context.Background())
	assert.NoError(t, err)

	_, err = service.CreateProduct(context.Background(), validInput())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, 403, apperr.StatusCode(err))

	err = service.DeleteProduct(context.Background(), "1")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	assert.Equal(t, []services.Action{services.ActionList, services.ActionCreate, services.ActionDelete}, seen)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
