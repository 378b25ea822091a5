package handlers

import (
	"fmt"

	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
	"catalogo/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles JSON requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes. /ping must precede /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/ping", h.HandlePing)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// HandlePing reports that the service is reachable.
func (h *ProductHandler) HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mensaje": msgPing,
		"estado":  estadoOK,
	})
}

// HandleGetProducts returns every product in creation order.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, "Error getting all products", err)
	}

	items := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		items = append(items, p.ToMap())
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"products": items,
		},
		"estado": estadoOK,
	})
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if err != nil {
		return h.fail(c, fmt.Sprintf("Error getting product by ID %s", productID), err)
	}
	return c.JSON(fiber.Map{
		"data":   product.ToMap(),
		"estado": estadoOK,
	})
}

// HandleCreateProduct creates a product from a JSON body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "Error parsing request body", fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err))
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Error creating product", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": fmt.Sprintf("%s fue agregado!!!", product.Nombre),
		"estado":  estadoOK,
	})
}

func (h *ProductHandler) fail(c *fiber.Ctx, msg string, err error) error {
	status, mensaje := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error(msg, zap.Error(err))
	} else {
		h.log.Info(msg, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(failure(mensaje))
}
