package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFixtures(t *testing.T) {
	f, err := DemoFixtures()
	require.NoError(t, err)
	assert.Len(t, f.Users, 3)
	assert.Len(t, f.Categories, 4)
	assert.Len(t, f.Products, 4)
	assert.Len(t, f.Customers, 4)
	assert.Len(t, f.Invoices, 2)
	assert.Len(t, f.Leads, 3)

	interactions := 0
	for _, l := range f.Leads {
		interactions += len(l.Interactions)
	}
	assert.Equal(t, 2, interactions)
	assert.Equal(t, "PAID", f.Invoices[0].Status)
	require.NotNil(t, f.Leads[2].Value)
	assert.InDelta(t, 75000.0, *f.Leads[2].Value, 1e-9)
}

func TestParseFixtures_RejectsDanglingReferences(t *testing.T) {
	_, err := ParseFixtures([]byte(`
products:
  - name: Orphan
    sku: ORP-1
    category: Missing
    price: 1
`))
	assert.ErrorContains(t, err, "unknown category")

	_, err = ParseFixtures([]byte(`
invoices:
  - customer: nobody@example.com
    subtotal: 1
    total: 1
`))
	assert.ErrorContains(t, err, "unknown customer")

	_, err = ParseFixtures([]byte("users: ["))
	assert.Error(t, err)
}
