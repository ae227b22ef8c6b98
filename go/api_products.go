package erpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	productapp "github.com/Apurer/erpflow/internal/domains/products/application"
	productports "github.com/Apurer/erpflow/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the products bounded context service.
type ProductAPI struct {
	service productports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /api/products
// List products, optionally only those low on stock
func (api *ProductAPI) ListProducts(c *gin.Context) {
	lowStock, _ := strconv.ParseBool(strings.TrimSpace(c.Query("lowStock")))
	page, err := api.service.List(c.Request.Context(), productports.ListFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		LowStock:   lowStock,
		Page:       parsePageRequest(c),
	})
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProductPage(page))
}

// Post /api/products
// Create a product
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	product, err := api.service.Create(c.Request.Context(), productports.CreateInput{
		Name:        payload.Name,
		SKU:         payload.SKU,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		Price:       payload.Price,
		Stock:       payload.Stock,
	})
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromProduct(product))
}

func respondProductServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, productapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, productports.ErrCategoryNotFound):
		respondError(c, http.StatusBadRequest, errors.New("Category not found"))
	case errors.Is(err, productports.ErrDuplicateSKU):
		respondError(c, http.StatusConflict, errors.New("Product with this SKU already exists"))
	case errors.Is(err, productports.ErrDuplicateCategory):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, productports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
