package service

import (
	"context"

	"github.com/givehub/escrow.api/models"
)

// PaymentProviderService is an interface for all the requests to external
// payment providers. Settlement logic is provider-agnostic: disbursement and
// recovery repayment both run through this interface.
type PaymentProviderService interface {
	// InitCheckout opens a hosted checkout the payer completes in a browser
	InitCheckout(ctx context.Context, spec models.CheckoutSpec) (*models.CheckoutSession, ResponseType, error)

	// CheckPaymentStatus queries the provider for the settlement status of a
	// previously initiated checkout. The ref is provider-scoped: the order
	// invoice number for SePay, the order ID for PayPal.
	CheckPaymentStatus(ctx context.Context, ref string) (*models.StatusResponse, ResponseType, error)

	// Transfer pays out from the platform account to a recipient and returns
	// the provider's settlement reference
	Transfer(ctx context.Context, orderRef string, amount int64, recipientID string) (string, ResponseType, error)
}
