package shopify

import "encoding/json"

// ---------------------------------------------------------------------------
// GraphQL Envelope
// ---------------------------------------------------------------------------

// graphQLRequest is the wire shape of an Admin API GraphQL call.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is a request-level error embedded in a 200 response.
type graphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// graphQLResponse is the Admin API response envelope. A populated Errors
// slice is a terminal application error even with HTTP 200.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// pageInfo carries cursor pagination state.
type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type moneyBag struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

type orderNode struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Email                    string   `json:"email"`
	DisplayFinancialStatus   string   `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string   `json:"displayFulfillmentStatus"`
	ProcessedAt              string   `json:"processedAt"`
	CancelledAt              *string  `json:"cancelledAt"`
	TotalPriceSet            moneyBag `json:"totalPriceSet"`
	SubtotalPriceSet         moneyBag `json:"subtotalPriceSet"`
	TotalTaxSet              moneyBag `json:"totalTaxSet"`
	TotalDiscountsSet        moneyBag `json:"totalDiscountsSet"`
	LineItems                struct {
		Nodes []lineItemNode `json:"nodes"`
	} `json:"lineItems"`
}

type lineItemNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Variant  *struct {
		ID string `json:"id"`
	} `json:"variant"`
	OriginalUnitPriceSet moneyBag `json:"originalUnitPriceSet"`
}

type ordersData struct {
	Orders struct {
		Nodes    []orderNode `json:"nodes"`
		PageInfo pageInfo    `json:"pageInfo"`
	} `json:"orders"`
}

// ---------------------------------------------------------------------------
// Products / Collections
// ---------------------------------------------------------------------------

type variantNode struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	SKU               string  `json:"sku"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compareAtPrice"`
	InventoryQuantity int     `json:"inventoryQuantity"`
}

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	ProductType string `json:"productType"`
	Vendor      string `json:"vendor"`
	Status      string `json:"status"`
	Variants    struct {
		Nodes []variantNode `json:"nodes"`
	} `json:"variants"`
	Collections struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	} `json:"collections"`
}

type productsData struct {
	Products struct {
		Nodes    []productNode `json:"nodes"`
		PageInfo pageInfo      `json:"pageInfo"`
	} `json:"products"`
}

type collectionNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

type collectionsData struct {
	Collections struct {
		Nodes    []collectionNode `json:"nodes"`
		PageInfo pageInfo         `json:"pageInfo"`
	} `json:"collections"`
}
