// Package swap implements the retrying REST client for the Swap returns API.
package swap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/httpx"
)

const maxResponseSize = 10 * 1024 * 1024

// dateParam is the wire format of from_date and to_date.
const dateParam = "2006-01-02"

// Client fetches returns from the Swap API with page-number pagination.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Swap client with the given configuration.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.withDefaults()

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout + 5*time.Second},
		logger:     logger.Named("swap"),
	}, nil
}

// FetchReturns fetches one page of returns created within the request window.
// The page size is clamped to the API ceiling.
func (c *Client) FetchReturns(ctx context.Context, req commerce.ReturnPageRequest) (*commerce.ReturnPage, error) {
	itemsPerPage := req.ItemsPerPage
	if itemsPerPage <= 0 || itemsPerPage > MaxItemsPerPage {
		itemsPerPage = MaxItemsPerPage
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("store", c.config.Store)
	params.Set("from_date", req.FromDate.UTC().Format(dateParam))
	params.Set("to_date", req.ToDate.UTC().Format(dateParam))
	params.Set("page", strconv.Itoa(page))
	params.Set("items_per_page", strconv.Itoa(itemsPerPage))
	params.Set("version", c.config.APIVersion)

	body, err := c.execute(ctx, c.config.BaseURL+"/returns?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp returnsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	result := &commerce.ReturnPage{
		Returns:     make([]commerce.ReturnRecord, 0, len(resp.Orders)),
		HasNextPage: resp.Pagination.HasNextPage,
	}
	for _, item := range resp.Orders {
		result.Returns = append(result.Returns, convertReturn(item))
	}
	return result, nil
}

// execute runs one GET under the retry policy and returns the response body.
func (c *Client) execute(ctx context.Context, requestURL string) ([]byte, error) {
	policy := httpx.Policy{
		MaxRetries: c.config.MaxRetries,
		BaseDelay:  c.config.BaseDelay,
		MaxDelay:   c.config.MaxDelay,
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		body, retryAfter, attemptErr := c.attempt(ctx, requestURL)
		if attemptErr == nil {
			return body, nil
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

		delay := policy.Delay(attempt, retryAfter)
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

// attempt performs a single request under a fresh per-attempt timeout.
func (c *Client) attempt(ctx context.Context, requestURL string) ([]byte, time.Duration, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("swap: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", commerce.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read response: %v", commerce.ErrTransport, err)
	}

	c.logger.Debug("response received", zap.Int("status", resp.StatusCode))

	if err, retryAfter := httpx.ClassifyStatus(resp.StatusCode, resp.Header.Get("Retry-After")); err != nil {
		return nil, retryAfter, err
	}
	return body, 0, nil
}

// convertReturn maps a Swap wire item to the domain model. Swap IDs pass
// through untouched; a shopify_order_id supplied by Swap is normalized.
func convertReturn(item returnItem) commerce.ReturnRecord {
	record := commerce.ReturnRecord{
		SwapReturnID:           item.ReturnID,
		OrderName:              item.OrderName,
		RMA:                    item.RMA,
		SwapOrderID:            item.OrderID,
		TypeString:             item.Type,
		Status:                 item.Status,
		ReturnStatus:           item.ReturnStatus,
		DeliveryStatus:         item.DeliveryStatus,
		Currency:               item.Currency,
		TotalRefundValue:       parseDecimal(item.TotalRefundValue),
		TotalCreditValue:       parseDecimal(item.TotalCreditValue),
		TotalAdditionalPayment: parseDecimal(item.TotalAdditionalPayment),
		Products:               make([]commerce.ReturnProduct, 0, len(item.Products)),
	}

	if item.ShopifyOrderID != "" {
		id := commerce.ExtractNumericID(item.ShopifyOrderID)
		record.ShopifyOrderID = &id
	}
	if t, ok := parseTime(item.DateCreated); ok {
		record.DateCreated = t
	}
	if item.SubmittedAt != nil {
		if t, ok := parseTime(*item.SubmittedAt); ok {
			record.SubmittedAt = &t
		}
	}

	for _, p := range item.Products {
		record.Products = append(record.Products, commerce.ReturnProduct{
			ShopifyProductID: commerce.ExtractNumericID(p.ShopifyProductID),
			ProductName:      p.ProductName,
			SKU:              p.SKU,
			ItemCount:        p.ItemCount,
			Cost:             parseDecimal(p.Cost),
			ReturnType:       p.ReturnType,
			Reasons:          p.Reasons,
		})
	}

	return record
}

// parseTime accepts the timestamp formats Swap has been observed to emit.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", dateParam} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
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

// Ensure Client implements the SwapGateway port.
var _ commerce.SwapGateway = (*Client)(nil)
