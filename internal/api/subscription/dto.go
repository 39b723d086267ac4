package subscription

type CreateSubscriptionRequest struct {
	PlanType string `json:"plan_type" validate:"required,oneof=monthly yearly"`
	Notes    string `json:"notes"`
}

type ReviewSubscriptionRequest struct {
	Notes string `json:"notes"`
}

type SubscriptionResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"user_id"`
	PlanType             string  `json:"plan_type"`
	Amount               float64 `json:"amount"`
	InvoiceNumber        string  `json:"invoice_number"`
	PaymentScreenshotURL string  `json:"payment_screenshot_url,omitempty"`
	Notes                string  `json:"notes,omitempty"`
	Status               string  `json:"status"`
	ReviewedBy           string  `json:"reviewed_by,omitempty"`
	ReviewedAt           string  `json:"reviewed_at,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}
