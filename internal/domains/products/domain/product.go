package domain

import (
	"errors"
	"strings"
	"time"
)

// LowStockThreshold is the stock level at or below which a product needs replenishment.
const LowStockThreshold = 10

var (
	ErrEmptyName        = errors.New("name is required")
	ErrEmptySKU         = errors.New("sku is required")
	ErrEmptyCategory    = errors.New("categoryId is required")
	ErrNonPositivePrice = errors.New("price must be positive")
	ErrNegativeStock    = errors.New("stock cannot be negative")
)

// Category groups products for browsing.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory builds a category ensuring required invariants.
func NewCategory(id, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Category{ID: id, Name: name, Description: strings.TrimSpace(description)}, nil
}

// Product is a sellable item tracked in inventory.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Description string
	CategoryID  string
	Price       float64
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// CategoryName is populated on reads.
	CategoryName string
}

// NewProduct builds a product ensuring required invariants.
func NewProduct(id, name, sku, categoryID string, price float64, stock int) (*Product, error) {
	p := &Product{
		ID:         id,
		Name:       strings.TrimSpace(name),
		SKU:        strings.TrimSpace(sku),
		CategoryID: strings.TrimSpace(categoryID),
		Price:      price,
		Stock:      stock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return ErrEmptyName
	case p.SKU == "":
		return ErrEmptySKU
	case p.CategoryID == "":
		return ErrEmptyCategory
	case p.Price <= 0:
		return ErrNonPositivePrice
	case p.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}

// LowStock reports whether the product is at or below the replenishment threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= LowStockThreshold
}
