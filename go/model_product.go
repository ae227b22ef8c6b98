package erpserver

import (
	"time"

	productdomain "github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required"`
	Description string  `json:"description,omitempty"`
	CategoryID  string  `json:"categoryId" binding:"required"`
	Price       float64 `json:"price" binding:"gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

type ProductCategory struct {
	Name string `json:"name"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Description *string          `json:"description"`
	CategoryID  string           `json:"categoryId"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Category    *ProductCategory `json:"category,omitempty"`
}

type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

func fromProduct(p *productdomain.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: optionalString(p.Description),
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryName != "" {
		out.Category = &ProductCategory{Name: p.CategoryName}
	}
	return out
}

func fromProductPage(page projection.Page[*productdomain.Product]) ProductList {
	out := ProductList{
		Products:   make([]Product, 0, len(page.Items)),
		Pagination: fromPagination(page.Pagination),
	}
	for _, p := range page.Items {
		out.Products = append(out.Products, fromProduct(p))
	}
	return out
}
