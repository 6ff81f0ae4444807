package swap

// returnsResponse is the wire shape of GET /returns. Swap names the top-level
// collection "orders" even though each element is a return.
type returnsResponse struct {
	Orders     []returnItem `json:"orders"`
	Pagination pagination   `json:"pagination"`
}

type pagination struct {
	HasNextPage bool `json:"has_next_page"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
}

type returnItem struct {
	ReturnID               string          `json:"return_id"`
	OrderName              string          `json:"order_name"`
	RMA                    string          `json:"rma"`
	OrderID                string          `json:"order_id"`
	ShopifyOrderID         string          `json:"shopify_order_id"`
	Type                   string          `json:"type"`
	Status                 string          `json:"status"`
	ReturnStatus           string          `json:"return_status"`
	DeliveryStatus         string          `json:"delivery_status"`
	Currency               string          `json:"currency"`
	TotalRefundValue       string          `json:"total_refund_value"`
	TotalCreditValue       string          `json:"total_credit_value"`
	TotalAdditionalPayment string          `json:"total_additional_payment"`
	DateCreated            string          `json:"date_created"`
	SubmittedAt            *string         `json:"submitted_at"`
	Products               []returnProduct `json:"products"`
}

type returnProduct struct {
	ShopifyProductID string   `json:"shopify_product_id"`
	ProductName      string   `json:"product_name"`
	SKU              string   `json:"sku"`
	ItemCount        int      `json:"item_count"`
	Cost             string   `json:"cost"`
	ReturnType       string   `json:"return_type"`
	Reasons          []string `json:"reasons"`
}
