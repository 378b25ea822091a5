package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
	"catalogo/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const indexView = "index"

// PageHandler serves the server-rendered product listing.
type PageHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(service *services.ProductService, log *zap.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the listing page routes.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Post("/", h.HandleAddProduct)
}

// HandleIndex renders every product, or the empty-state message.
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "")
}

// HandleAddProduct creates a product from form fields and redirects back to the listing.
func (h *PageHandler) HandleAddProduct(c *fiber.Ctx) error {
	req, err := formRequest(c)
	if err != nil {
		status, mensaje := errorStatus(err)
		h.log.Info("Error parsing product form", zap.Error(err))
		return h.render(c, status, mensaje)
	}

	if _, err := h.service.CreateProduct(c.UserContext(), req); err != nil {
		status, mensaje := errorStatus(err)
		h.log.Info("Error creating product from form", zap.Int("status", status), zap.Error(err))
		return h.render(c, status, mensaje)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// formRequest reads the product form. Browsers submit untouched number inputs
// as empty strings; those stay nil so validation rejects them instead of
// storing a zero.
func formRequest(c *fiber.Ctx) (models.CreateProductRequest, error) {
	req := models.CreateProductRequest{
		Nombre:      c.FormValue("nombre"),
		Descripcion: c.FormValue("descripcion"),
		Categoria:   c.FormValue("categoria"),
	}

	if raw := strings.TrimSpace(c.FormValue("cantidad")); raw != "" {
		cantidad, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("%w: cantidad %q: %v", apperrors.ErrInvalidPayload, raw, err)
		}
		req.Cantidad = &cantidad
	}
	if raw := strings.TrimSpace(c.FormValue("precio")); raw != "" {
		precio, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: precio %q: %v", apperrors.ErrInvalidPayload, raw, err)
		}
		if math.IsNaN(precio) || math.IsInf(precio, 0) {
			return req, fmt.Errorf("%w: precio %q is not a finite number", apperrors.ErrInvalidPayload, raw)
		}
		req.Precio = &precio
	}
	return req, nil
}

func (h *PageHandler) render(c *fiber.Ctx, status int, mensaje string) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		h.log.Error("Error listing products for page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString(msgInternal)
	}
	return c.Status(status).Render(indexView, fiber.Map{
		"Title":    "All Products",
		"Products": products,
		"Mensaje":  mensaje,
	})
}
