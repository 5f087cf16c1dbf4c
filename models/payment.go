package models

// CheckoutSpec describes a payment the external gateway should collect from a
// payer. The same shape is reused for recovery repayments regardless of the
// provider behind it.
type CheckoutSpec struct {
	OrderRef    string
	Amount      int64
	Currency    string
	SuccessURL  string
	ErrorURL    string
	CancelURL   string
	CallbackURL string
	CustomData  string
}

// CheckoutSession is the gateway's answer to a checkout initiation. For
// hosted-form providers FormFields carries the signed fields the payer's
// browser must post; ProviderRef is the gateway-side identifier used for
// later status queries.
type CheckoutSession struct {
	CheckoutURL string
	FormFields  map[string]string
	ProviderRef string
}
