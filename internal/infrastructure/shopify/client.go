package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/httpx"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client is a retrying GraphQL client for the Shopify Admin API. All
// failures surface as typed errors from the commerce taxonomy; the client
// never panics on transport failure.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Shopify client with the given configuration.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.withDefaults()

	return &Client{
		config: config,
		// Per-attempt deadlines come from the context; the transport-level
		// timeout is a safety net above the configured attempt timeout.
		httpClient: &http.Client{Timeout: config.Timeout + 5*time.Second},
		logger:     logger.Named("shopify"),
	}, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

const ordersQuery = `
query SyncOrders($first: Int!, $after: String, $query: String) {
  orders(first: $first, after: $after, query: $query, sortKey: UPDATED_AT) {
    nodes {
      id
      name
      email
      displayFinancialStatus
      displayFulfillmentStatus
      processedAt
      cancelledAt
      totalPriceSet { shopMoney { amount currencyCode } }
      subtotalPriceSet { shopMoney { amount currencyCode } }
      totalTaxSet { shopMoney { amount currencyCode } }
      totalDiscountsSet { shopMoney { amount currencyCode } }
      lineItems(first: 100) {
        nodes {
          id
          title
          sku
          quantity
          variant { id }
          originalUnitPriceSet { shopMoney { amount currencyCode } }
        }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

const productsQuery = `
query SyncProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    nodes {
      id
      title
      handle
      productType
      vendor
      status
      variants(first: 100) {
        nodes { id title sku price compareAtPrice inventoryQuantity }
      }
      collections(first: 50) {
        nodes { id }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

const collectionsQuery = `
query SyncCollections($first: Int!, $after: String) {
  collections(first: $first, after: $after) {
    nodes { id title handle }
    pageInfo { hasNextPage endCursor }
  }
}`

// ---------------------------------------------------------------------------
// Gateway Implementation
// ---------------------------------------------------------------------------

// FetchOrders fetches one page of orders updated at or after the request
// timestamp.
func (c *Client) FetchOrders(ctx context.Context, req commerce.OrderPageRequest) (*commerce.OrderPage, error) {
	variables := map[string]any{
		"first": req.First,
		"query": fmt.Sprintf("updated_at:>=%s", req.UpdatedAt.UTC().Format(time.RFC3339)),
	}
	if req.After != "" {
		variables["after"] = req.After
	}

	raw, err := c.execute(ctx, ordersQuery, variables)
	if err != nil {
		return nil, err
	}

	var data ordersData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	page := &commerce.OrderPage{
		Orders:      make([]commerce.Order, 0, len(data.Orders.Nodes)),
		HasNextPage: data.Orders.PageInfo.HasNextPage,
		EndCursor:   data.Orders.PageInfo.EndCursor,
	}
	for _, node := range data.Orders.Nodes {
		page.Orders = append(page.Orders, convertOrder(node))
	}
	return page, nil
}

// FetchProducts fetches one page of products with variants and collection
// memberships.
func (c *Client) FetchProducts(ctx context.Context, req commerce.CatalogPageRequest) (*commerce.ProductPage, error) {
	variables := map[string]any{"first": req.First}
	if req.After != "" {
		variables["after"] = req.After
	}

	raw, err := c.execute(ctx, productsQuery, variables)
	if err != nil {
		return nil, err
	}

	var data productsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	page := &commerce.ProductPage{
		Products:    make([]commerce.Product, 0, len(data.Products.Nodes)),
		HasNextPage: data.Products.PageInfo.HasNextPage,
		EndCursor:   data.Products.PageInfo.EndCursor,
	}
	for _, node := range data.Products.Nodes {
		page.Products = append(page.Products, convertProduct(node))
	}
	return page, nil
}

// FetchCollections fetches one page of collections.
func (c *Client) FetchCollections(ctx context.Context, req commerce.CatalogPageRequest) (*commerce.CollectionPage, error) {
	variables := map[string]any{"first": req.First}
	if req.After != "" {
		variables["after"] = req.After
	}

	raw, err := c.execute(ctx, collectionsQuery, variables)
	if err != nil {
		return nil, err
	}

	var data collectionsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	page := &commerce.CollectionPage{
		Collections: make([]commerce.Collection, 0, len(data.Collections.Nodes)),
		HasNextPage: data.Collections.PageInfo.HasNextPage,
		EndCursor:   data.Collections.PageInfo.EndCursor,
	}
	for _, node := range data.Collections.Nodes {
		page.Collections = append(page.Collections, commerce.Collection{
			ShopifyCollectionID: commerce.ExtractNumericID(node.ID),
			Title:               node.Title,
			Handle:              node.Handle,
		})
	}
	return page, nil
}

// ---------------------------------------------------------------------------
// Retry Loop
// ---------------------------------------------------------------------------

// execute runs one GraphQL call under the retry policy and returns the raw
// data payload.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		data, retryAfter, attemptErr := c.attempt(ctx, body)
		if attemptErr == nil {
			return data, nil
		}
		lastErr = attemptErr

		if !commerce.IsRetryable(attemptErr) {
			c.logger.Warn("request failed, not retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(attemptErr),
			)
			return nil, attemptErr
		}
		if attempt == c.config.MaxRetries {
			break
		}

		delay := c.retryPolicy().Delay(attempt, retryAfter)
		c.logger.Info("request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(attemptErr),
		)
		if err := httpx.SleepContext(ctx, delay); err != nil {
			return nil, fmt.Errorf("%w: %v", commerce.ErrTransport, err)
		}
	}

	return nil, &commerce.MaxRetriesError{Attempts: c.config.MaxRetries + 1, Last: lastErr}
}

// attempt performs a single request under a fresh per-attempt timeout. The
// returned retryAfter is non-zero only for rate-limit responses carrying a
// Retry-After header.
func (c *Client) attempt(ctx context.Context, body []byte) (json.RawMessage, time.Duration, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.config.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)

	c.logger.Debug("request start", zap.String("endpoint", c.config.endpoint()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", commerce.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read response: %v", commerce.ErrTransport, err)
	}

	c.logger.Debug("response received", zap.Int("status", resp.StatusCode))

	if err, retryAfter := httpx.ClassifyStatus(resp.StatusCode, resp.Header.Get("Retry-After")); err != nil {
		return nil, retryAfter, err
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, 0, fmt.Errorf("%w: %s", commerce.ErrGraphQL, strings.Join(messages, "; "))
	}

	return envelope.Data, 0, nil
}

// retryPolicy derives the backoff policy from the client configuration.
func (c *Client) retryPolicy() httpx.Policy {
	return httpx.Policy{
		MaxRetries: c.config.MaxRetries,
		BaseDelay:  c.config.BaseDelay,
		MaxDelay:   c.config.MaxDelay,
	}
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// convertOrder maps an Admin API order node to the domain model, normalizing
// all composite IDs.
func convertOrder(node orderNode) commerce.Order {
	order := commerce.Order{
		ShopifyOrderID:    commerce.ExtractNumericID(node.ID),
		Name:              node.Name,
		OrderNumber:       commerce.ExtractOrderNumber(node.Name),
		Email:             node.Email,
		FinancialStatus:   node.DisplayFinancialStatus,
		FulfillmentStatus: node.DisplayFulfillmentStatus,
		Currency:          node.TotalPriceSet.ShopMoney.CurrencyCode,
		TotalPrice:        parseDecimal(node.TotalPriceSet.ShopMoney.Amount),
		SubtotalPrice:     parseDecimal(node.SubtotalPriceSet.ShopMoney.Amount),
		TotalTax:          parseDecimal(node.TotalTaxSet.ShopMoney.Amount),
		TotalDiscounts:    parseDecimal(node.TotalDiscountsSet.ShopMoney.Amount),
		LineItems:         make([]commerce.OrderLineItem, 0, len(node.LineItems.Nodes)),
	}

	if t, err := time.Parse(time.RFC3339, node.ProcessedAt); err == nil {
		order.ProcessedAt = t
	}
	if node.CancelledAt != nil {
		if t, err := time.Parse(time.RFC3339, *node.CancelledAt); err == nil {
			order.CancelledAt = &t
		}
	}

	for _, item := range node.LineItems.Nodes {
		lineItem := commerce.OrderLineItem{
			ShopifyLineItemID: commerce.ExtractNumericID(item.ID),
			Title:             item.Title,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			Price:             parseDecimal(item.OriginalUnitPriceSet.ShopMoney.Amount),
		}
		if item.Variant != nil {
			lineItem.VariantID = commerce.ExtractNumericID(item.Variant.ID)
		}
		order.LineItems = append(order.LineItems, lineItem)
	}

	return order
}

// convertProduct maps an Admin API product node to the domain model.
func convertProduct(node productNode) commerce.Product {
	product := commerce.Product{
		ShopifyProductID: commerce.ExtractNumericID(node.ID),
		Title:            node.Title,
		Handle:           node.Handle,
		ProductType:      node.ProductType,
		Vendor:           node.Vendor,
		Status:           node.Status,
		Variants:         make([]commerce.ProductVariant, 0, len(node.Variants.Nodes)),
		CollectionIDs:    make([]string, 0, len(node.Collections.Nodes)),
	}

	for _, v := range node.Variants.Nodes {
		variant := commerce.ProductVariant{
			ShopifyVariantID: commerce.ExtractNumericID(v.ID),
			Title:            v.Title,
			SKU:              v.SKU,
			Price:            parseDecimal(v.Price),
			InventoryQty:     v.InventoryQuantity,
		}
		if v.CompareAtPrice != nil {
			compareAt := parseDecimal(*v.CompareAtPrice)
			variant.CompareAtPrice = &compareAt
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, col := range node.Collections.Nodes {
		product.CollectionIDs = append(product.CollectionIDs, commerce.ExtractNumericID(col.ID))
	}

	return product
}

// parseDecimal parses a platform amount string, returning zero on malformed
// input rather than failing the whole record.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure Client implements the ShopifyGateway port.
var _ commerce.ShopifyGateway = (*Client)(nil)
