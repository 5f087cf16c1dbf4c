package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/models"
	"github.com/plutov/paypal/v4"
)

var paypalClient *paypal.Client

// GetPayPalClient returns an authenticated PayPal client, creating it on
// first use
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if paypalClient != nil {
		return paypalClient, nil
	}

	paypalAPIBase := getPayPalAPIBase(cfg.PayPalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PayPalEnv)
	}

	c, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalClientSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}
	paypalClient = c
	return c, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be
// used in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
	CreateSinglePayout(ctx context.Context, p paypal.Payout) (*paypal.PayoutResponse, error)
}

// PayPalService handles the specific functionality of collecting recovery
// repayments and paying out disbursements through PayPal
type PayPalService struct {
	Client PayPalSDK
	Config config.Config
}

// InitCheckout creates a PayPal order the creator approves in a browser
func (pp *PayPalService) InitCheckout(ctx context.Context, spec models.CheckoutSpec) (*models.CheckoutSession, ResponseType, error) {
	order, err := pp.Client.CreateOrder(
		ctx,
		paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: spec.OrderRef,
				CustomID:    spec.CustomData,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    strconv.FormatInt(spec.Amount, 10),
					Currency: spec.Currency,
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: spec.SuccessURL,
			CancelURL: spec.CancelURL,
		},
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		return nil, Error, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	var approveURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
		}
	}

	return &models.CheckoutSession{
		CheckoutURL: approveURL,
		ProviderRef: order.ID,
	}, Success, nil
}

// CheckPaymentStatus captures an approved PayPal order and reports the
// normalised settlement status. Capturing an already-captured order is
// answered with the stored completion, so the check stays idempotent.
func (pp *PayPalService) CheckPaymentStatus(ctx context.Context, ref string) (*models.StatusResponse, ResponseType, error) {
	order, err := pp.Client.GetOrder(ctx, ref)
	if err != nil {
		return nil, Error, fmt.Errorf("error checking payment status with PayPal: [%w]", err)
	}

	amount := orderAmount(order)

	switch order.Status {
	case paypal.OrderStatusCompleted:
		return &models.StatusResponse{Status: models.GatewayStatusCompleted, Amount: amount}, Success, nil
	case paypal.OrderStatusApproved:
		capture, err := pp.Client.CaptureOrder(ctx, ref, paypal.CaptureOrderRequest{})
		if err != nil {
			return nil, Error, fmt.Errorf("error capturing paypal order: [%w]", err)
		}
		if capture.Status == paypal.OrderStatusCompleted {
			return &models.StatusResponse{Status: models.GatewayStatusCompleted, Amount: amount}, Success, nil
		}
		return &models.StatusResponse{Status: models.GatewayStatusFailed}, Success, nil
	case paypal.OrderStatusVoided:
		return &models.StatusResponse{Status: models.GatewayStatusCancelled}, Success, nil
	default:
		return &models.StatusResponse{Status: models.GatewayStatusFailed}, Success, nil
	}
}

// orderAmount reads the order total off the first purchase unit; orders this
// service opens always carry exactly one
func orderAmount(order *paypal.Order) int64 {
	if len(order.PurchaseUnits) == 0 || order.PurchaseUnits[0].Amount == nil {
		return 0
	}
	amount, err := strconv.ParseInt(order.PurchaseUnits[0].Amount.Value, 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

// Transfer pays out to a recipient through a PayPal payout
func (pp *PayPalService) Transfer(ctx context.Context, orderRef string, amount int64, recipientID string) (string, ResponseType, error) {
	payout := paypal.Payout{
		SenderBatchHeader: &paypal.SenderBatchHeader{
			SenderBatchID: orderRef,
		},
		Items: []paypal.PayoutItem{
			{
				RecipientType: "EMAIL",
				Receiver:      recipientID,
				Amount: &paypal.AmountPayout{
					Value:    strconv.FormatInt(amount, 10),
					Currency: "USD",
				},
			},
		},
	}

	res, err := pp.Client.CreateSinglePayout(ctx, payout)
	if err != nil {
		return "", PaymentFailed, fmt.Errorf("error creating paypal payout: [%v]", err)
	}

	return res.BatchHeader.PayoutBatchID, Success, nil
}

func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
