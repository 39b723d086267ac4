package receipt

// ScanReceiptRequest is the JSON body variant of the scan input. Clients can
// send a multipart "image" file instead; the handler folds both into Image.
type ScanReceiptRequest struct {
	Image string `json:"image_base64" validate:"required"`
}

// ExtractedReceipt mirrors the JSON object the vision model is asked to
// produce. Fields are passed through to the client without correction.
type ExtractedReceipt struct {
	Merchant string          `json:"merchant"`
	Amount   float64         `json:"amount"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Items    []ExtractedItem `json:"items,omitempty"`
}

type ExtractedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ScanReceiptResponse struct {
	Receipt        ExtractedReceipt `json:"receipt"`
	ScansRemaining int64            `json:"scans_remaining"`
	Unlimited      bool             `json:"unlimited"`
}
