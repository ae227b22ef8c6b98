// Package domain describes the demo data set loaded into an empty database.
package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DemoPassword is shared by every seeded user.
const DemoPassword = "demo123456"

//go:embed fixtures.yaml
var fixturesYAML []byte

type UserFixture struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

type CategoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ProductFixture struct {
	Name        string  `yaml:"name"`
	SKU         string  `yaml:"sku"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
}

type CustomerFixture struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Company string `yaml:"company"`
}

type InvoiceItemFixture struct {
	SKU      string  `yaml:"sku"`
	Quantity float64 `yaml:"quantity"`
	Price    float64 `yaml:"price"`
}

// InvoiceFixture references its customer by email and its products by SKU.
type InvoiceFixture struct {
	Customer  string               `yaml:"customer"`
	Subtotal  float64              `yaml:"subtotal"`
	Tax       float64              `yaml:"tax"`
	Total     float64              `yaml:"total"`
	Status    string               `yaml:"status"`
	DueInDays int                  `yaml:"dueInDays"`
	Items     []InvoiceItemFixture `yaml:"items"`
}

type InteractionFixture struct {
	Type        string `yaml:"type"`
	Subject     string `yaml:"subject"`
	Description string `yaml:"description"`
	DaysAgo     int    `yaml:"daysAgo"`
}

type LeadFixture struct {
	Name         string               `yaml:"name"`
	Email        string               `yaml:"email"`
	Phone        string               `yaml:"phone"`
	Company      string               `yaml:"company"`
	Value        *float64             `yaml:"value"`
	Status       string               `yaml:"status"`
	Source       string               `yaml:"source"`
	Customer     string               `yaml:"customer"`
	Interactions []InteractionFixture `yaml:"interactions"`
}

// Fixtures is the full demo data set.
type Fixtures struct {
	Users      []UserFixture     `yaml:"users"`
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
	Customers  []CustomerFixture `yaml:"customers"`
	Invoices   []InvoiceFixture  `yaml:"invoices"`
	Leads      []LeadFixture     `yaml:"leads"`
}

// DemoFixtures decodes the embedded data set.
func DemoFixtures() (Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures decodes a YAML data set and checks its cross references.
func ParseFixtures(raw []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

// Validate checks that every reference resolves within the data set.
func (f Fixtures) Validate() error {
	categories := map[string]bool{}
	for _, c := range f.Categories {
		categories[c.Name] = true
	}
	skus := map[string]bool{}
	for _, p := range f.Products {
		if !categories[p.Category] {
			return fmt.Errorf("product %s: unknown category %q", p.SKU, p.Category)
		}
		skus[p.SKU] = true
	}
	customers := map[string]bool{}
	for _, c := range f.Customers {
		customers[c.Email] = true
	}
	for i, inv := range f.Invoices {
		if !customers[inv.Customer] {
			return fmt.Errorf("invoice %d: unknown customer %q", i+1, inv.Customer)
		}
		for _, item := range inv.Items {
			if !skus[item.SKU] {
				return fmt.Errorf("invoice %d: unknown product %q", i+1, item.SKU)
			}
		}
	}
	for _, l := range f.Leads {
		if l.Customer != "" && !customers[l.Customer] {
			return fmt.Errorf("lead %q: unknown customer %q", l.Name, l.Customer)
		}
	}
	return nil
}

// Counts reports how many records of each kind were created.
type Counts struct {
	Users        int `json:"users"`
	Categories   int `json:"categories"`
	Products     int `json:"products"`
	Customers    int `json:"customers"`
	Invoices     int `json:"invoices"`
	Leads        int `json:"leads"`
	Interactions int `json:"interactions"`
}

const (
	MessageSeeded        = "Database seeded successfully"
	MessageAlreadySeeded = "Database already seeded"
)

// Result is the outcome of a seeding run. Data is nil when nothing was created.
type Result struct {
	Message string  `json:"message"`
	Data    *Counts `json:"data,omitempty"`
}
