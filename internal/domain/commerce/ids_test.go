package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumericID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"order gid", "gid://shopify/Order/5479106625723", "5479106625723"},
		{"product gid", "gid://shopify/Product/123", "123"},
		{"variant gid", "gid://shopify/ProductVariant/987654", "987654"},
		{"gid with query suffix", "gid://shopify/LineItem/42?namespace=checkout", "42"},
		{"already numeric", "123", "123"},
		{"empty string", "", ""},
		{"plain text passthrough", "not-a-gid", "not-a-gid"},
		{"gid with non-numeric tail", "gid://shopify/Order/abc", "gid://shopify/Order/abc"},
		{"gid with trailing slash", "gid://shopify/Order/", "gid://shopify/Order/"},
		{"swap id passthrough", "swp_8f2e61", "swp_8f2e61"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumericID(tt.input))
		})
	}
}

func TestExtractNumericID_Deterministic(t *testing.T) {
	in := "gid://shopify/Order/5479106625723"
	first := ExtractNumericID(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractNumericID(in))
	}
}

func TestShopifyGID_RoundTrip(t *testing.T) {
	gid := ShopifyGID("Order", "123")
	assert.Equal(t, "gid://shopify/Order/123", gid)
	assert.Equal(t, "123", ExtractNumericID(gid))
}

func TestExtractOrderNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain hash number", "#1234", 1234},
		{"alphabetic prefix", "EXP1042", 1042},
		{"digits only", "777", 777},
		{"digits mid-string", "order-55-draft", 55},
		{"no digits", "draft", 0},
		{"empty", "", 0},
		{"first run wins", "A12B34", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractOrderNumber(tt.in))
		})
	}
}
