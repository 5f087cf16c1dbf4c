package models

// OutgoingSePayRequest is the request sent to SePay to open a hosted checkout
type OutgoingSePayRequest struct {
	MerchantID         string `json:"merchant_id"`
	OrderInvoiceNumber string `json:"orderInvoiceNumber"`
	Amount             int64  `json:"amount"`
	Currency           string `json:"currency"`
	SuccessURL         string `json:"successUrl"`
	ErrorURL           string `json:"errorUrl"`
	CancelURL          string `json:"cancelUrl"`
	CallbackURL        string `json:"callbackUrl"`
	CustomData         string `json:"customData,omitempty"`
	Signature          string `json:"signature"`
}

// IncomingSePayResponse is the response received from SePay when a checkout
// is opened
type IncomingSePayResponse struct {
	CheckoutURL string            `json:"checkout_url"`
	FormFields  map[string]string `json:"form_fields"`
	Description string            `json:"description,omitempty"`
}

// SePayCallback is the settlement notification delivered by SePay. Delivery
// is at-least-once, so consumers must deduplicate on OrderInvoiceNumber.
type SePayCallback struct {
	OrderInvoiceNumber string `json:"orderInvoiceNumber" validate:"required"`
	Status             string `json:"status"             validate:"required,oneof=COMPLETED FAILED CANCELLED"`
	Amount             int64  `json:"amount"`
	TransactionID      string `json:"transaction_id,omitempty"`
	Signature          string `json:"signature,omitempty"`
}

// SePayStatusResponse is SePay's answer to a payment status query
type SePayStatusResponse struct {
	OrderInvoiceNumber string `json:"orderInvoiceNumber"`
	Status             string `json:"status"`
	Amount             int64  `json:"amount"`
}

// StatusResponse is the normalised provider-agnostic settlement status.
// Amount is populated where the provider reports it.
type StatusResponse struct {
	Status string `json:"status"`
	Amount int64  `json:"amount,omitempty"`
}
