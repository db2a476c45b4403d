package services

import (
	"context"
	"errors"
	"time"

	"catalog/internal/apperr"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo           repositories.ProductRepository
	authorizer     Authorizer
	publisher      events.Publisher
	validate       *validator.Validate
	tracer         trace.Tracer
	allowZeroPrice bool
	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds how long a mutation waits for the broker.
const DefaultPublishTimeout = 3 * time.Second

// Option configures a ProductService.
type Option func(*ProductService)

// WithAuthorizer replaces the default AllowAll hook.
func WithAuthorizer(a Authorizer) Option {
	return func(s *ProductService) {
		s.authorizer = a
	}
}

// WithPublisher sets where product events go. The default discards them.
func WithPublisher(p events.Publisher) Option {
	return func(s *ProductService) {
		s.publisher = p
	}
}

// WithZeroPriceAllowed makes create accept a price of 0. By default a zero
// price counts as a missing field.
func WithZeroPriceAllowed(allow bool) Option {
	return func(s *ProductService) {
		s.allowZeroPrice = allow
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *ProductService) {
		s.publishTimeout = d
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...Option) *ProductService {
	s := &ProductService{
		repo:           repo,
		authorizer:     AllowAll{},
		publisher:      events.Noop{},
		validate:       newValidator(),
		tracer:         otel.Tracer("catalog/internal/services"),
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) (products []models.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAllProducts")
	defer func() { endSpan(span, err) }()

	if err = s.authorize(ctx, ActionList); err != nil {
		return nil, err
	}

	products, err = s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Storage("Error fetching products", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (product *models.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer func() { endSpan(span, err) }()

	if err = s.authorize(ctx, ActionGet); err != nil {
		return nil, err
	}
	return s.find(ctx, id, "Error fetching product")
}

// CreateProduct validates the input and stores a new product. Stock defaults
// to 0 when absent.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (product *models.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer func() { endSpan(span, err) }()

	if err = s.authorize(ctx, ActionCreate); err != nil {
		return nil, err
	}
	if err = s.checkRequired(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if err = s.checkInvariants(fields); err != nil {
		return nil, err
	}

	product = &models.Product{ProductFields: fields}
	if err = s.repo.Create(ctx, product); err != nil {
		return nil, apperr.Storage("Error creating product", err)
	}
	span.SetAttributes(attribute.String("product.id", product.ID))

	s.publish(ctx, events.NewProductEvent(events.ProductCreated, product.ID, product))
	return product, nil
}

// UpdateProduct replaces every editable field of an existing product with
// the input. Fields missing from the input are stored as zero values.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ProductInput) (product *models.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer func() { endSpan(span, err) }()

	if err = s.authorize(ctx, ActionUpdate); err != nil {
		return nil, err
	}
	if _, err = s.find(ctx, id, "Error updating product"); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if err = s.checkInvariants(fields); err != nil {
		return nil, err
	}

	product, err = s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperr.NotFound(apperr.MsgNotFound)
		}
		return nil, apperr.Storage("Error updating product", err)
	}

	s.publish(ctx, events.NewProductEvent(events.ProductUpdated, product.ID, product))
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer func() { endSpan(span, err) }()

	if err = s.authorize(ctx, ActionDelete); err != nil {
		return err
	}
	if _, err = s.find(ctx, id, "Error deleting product"); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return apperr.NotFound(apperr.MsgNotFound)
		}
		return apperr.Storage("Error deleting product", err)
	}

	s.publish(ctx, events.NewProductEvent(events.ProductDeleted, id, nil))
	return nil
}

func (s *ProductService) authorize(ctx context.Context, action Action) error {
	if err := s.authorizer.Authorize(ctx, action); err != nil {
		return apperr.Forbidden("Not allowed to perform "+string(action), err)
	}
	return nil
}

func (s *ProductService) find(ctx context.Context, id, failure string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperr.NotFound(apperr.MsgNotFound)
		}
		return nil, apperr.Storage(failure, err)
	}
	return product, nil
}

// checkRequired treats any falsy value as missing, so an explicit price of 0
// is rejected unless zero prices are allowed.
func (s *ProductService) checkRequired(input ProductInput) error {
	missing := make(map[string]string)
	if err := s.validate.Struct(input); err != nil {
		missing = fieldMessages(err)
	}
	if input.Price == nil || (*input.Price == 0 && !s.allowZeroPrice) {
		missing["price"] = "is required"
	}
	if len(missing) > 0 {
		return apperr.Validation(apperr.MsgMissingFields, missing)
	}
	return nil
}

func (s *ProductService) checkInvariants(fields models.ProductFields) error {
	rules := invariantRules{
		Price:    fields.Price,
		Stock:    fields.Stock,
		Category: string(fields.Category),
	}
	if err := s.validate.Struct(rules); err != nil {
		return apperr.Validation(apperr.MsgInvalidFields, fieldMessages(err))
	}
	return nil
}

// publish waits at most publishTimeout and ignores request cancellation.
func (s *ProductService) publish(ctx context.Context, event events.ProductEvent) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(publishCtx, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("component", "ProductService").
			Str("event", string(event.Type)).
			Str("product_id", event.ProductID).
			Msg("failed to publish product event")
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
