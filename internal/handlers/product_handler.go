package handlers

import (
	"catalog/internal/apperr"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service    *services.ProductService
	authorizer services.Authorizer
	production bool
}

// ProductHandlerOption configures a ProductHandler.
type ProductHandlerOption func(*ProductHandler)

// WithRouteAuthorizer checks every product route against a before the
// handler runs.
func WithRouteAuthorizer(a services.Authorizer) ProductHandlerOption {
	return func(h *ProductHandler) {
		h.authorizer = a
	}
}

// WithProductionErrors hides error details from response bodies.
func WithProductionErrors(production bool) ProductHandlerOption {
	return func(h *ProductHandler) {
		h.production = production
	}
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, opts ...ProductHandlerOption) *ProductHandler {
	h := &ProductHandler{
		service:    service,
		authorizer: services.AllowAll{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the product routes under /products.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.authorize(services.ActionList), h.HandleGetProducts)
	productRoutes.Get("/:id", h.authorize(services.ActionGet), h.HandleGetProductByID)
	productRoutes.Post("/", h.authorize(services.ActionCreate), h.HandleCreateProduct)
	productRoutes.Put("/:id", h.authorize(services.ActionUpdate), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.authorize(services.ActionDelete), h.HandleDeleteProduct)
}

func (h *ProductHandler) authorize(action services.Action) fiber.Handler {
	return middleware.Authorize(h.authorizer, action)
}

// HandleGetProducts returns every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err, h.production)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, h.production)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product and answers 201 with the stored record.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return h.invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		middleware.RecordProductWrite("create", apperr.KindOf(err).String())
		return respondError(c, err, h.production)
	}
	middleware.RecordProductWrite("create", "ok")
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites every editable field of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		return h.invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), input)
	if err != nil {
		middleware.RecordProductWrite("update", apperr.KindOf(err).String())
		return respondError(c, err, h.production)
	}
	middleware.RecordProductWrite("update", "ok")
	return c.JSON(product)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		middleware.RecordProductWrite("delete", apperr.KindOf(err).String())
		return respondError(c, err, h.production)
	}
	middleware.RecordProductWrite("delete", "ok")
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// parseInput reads a JSON body. An empty body or a non-JSON content type
// yields an empty input, which the service rejects field by field.
func parseInput(c *fiber.Ctx) (services.ProductInput, error) {
	var input services.ProductInput
	if len(c.Body()) == 0 || !c.Is("json") {
		return input, nil
	}
	err := c.BodyParser(&input)
	return input, err
}

func (h *ProductHandler) invalidBody(c *fiber.Ctx, err error) error {
	body := fiber.Map{"message": msgInvalidBody}
	if !h.production {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
