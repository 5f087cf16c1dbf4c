package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/plutov/paypal/v4"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitPayPalInitCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockSDK := NewMockPayPalSDK(mockCtrl)
	service := PayPalService{Client: mockSDK, Config: *cfg}

	ctx := context.Background()
	spec := models.CheckoutSpec{
		OrderRef:   "RCV-case1-123",
		Amount:     250000,
		Currency:   "USD",
		SuccessURL: "https://escrow.givehub.vn/recovery/sepay/success",
		CancelURL:  "https://escrow.givehub.vn/recovery/sepay/cancel",
		CustomData: "case1",
	}

	Convey("Checkout session carries the approve link", t, func() {
		var units []paypal.PurchaseUnitRequest
		mockSDK.EXPECT().CreateOrder(ctx, paypal.OrderIntentCapture, gomock.Any(), nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, u []paypal.PurchaseUnitRequest, _ *paypal.CreateOrderPayer, _ *paypal.ApplicationContext) (*paypal.Order, error) {
				units = u
				return &paypal.Order{
					ID:     "pp-order-1",
					Status: paypal.OrderStatusCreated,
					Links: []paypal.Link{
						{Rel: "self", Href: "https://api.paypal.com/v2/checkout/orders/pp-order-1"},
						{Rel: "approve", Href: "https://www.paypal.com/checkoutnow?token=pp-order-1"},
					},
				}, nil
			})

		session, responseType, err := service.InitCheckout(ctx, spec)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(session.CheckoutURL, ShouldEqual, "https://www.paypal.com/checkoutnow?token=pp-order-1")
		So(session.ProviderRef, ShouldEqual, "pp-order-1")
		So(units, ShouldHaveLength, 1)
		So(units[0].ReferenceID, ShouldEqual, "RCV-case1-123")
		So(units[0].CustomID, ShouldEqual, "case1")
		So(units[0].Amount.Value, ShouldEqual, "250000")
	})

	Convey("Error when the order is not created", t, func() {
		mockSDK.EXPECT().CreateOrder(ctx, paypal.OrderIntentCapture, gomock.Any(), nil, gomock.Any()).
			Return(&paypal.Order{ID: "pp-order-1", Status: paypal.OrderStatusVoided}, nil)

		session, responseType, err := service.InitCheckout(ctx, spec)

		So(session, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "status is not CREATED")
	})

	Convey("Error when PayPal rejects the order", t, func() {
		mockSDK.EXPECT().CreateOrder(ctx, paypal.OrderIntentCapture, gomock.Any(), nil, gomock.Any()).
			Return(nil, errors.New("unauthorized"))

		session, responseType, err := service.InitCheckout(ctx, spec)

		So(session, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error creating order")
	})
}

func TestUnitPayPalCheckPaymentStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockSDK := NewMockPayPalSDK(mockCtrl)
	service := PayPalService{Client: mockSDK, Config: *cfg}

	ctx := context.Background()
	ref := "pp-order-1"

	purchaseUnits := []paypal.PurchaseUnit{
		{ReferenceID: "RCV-case1-123", Amount: &paypal.PurchaseUnitAmount{Value: "250000", Currency: "USD"}},
	}

	Convey("A completed order is reported as completed with its amount", t, func() {
		mockSDK.EXPECT().GetOrder(ctx, ref).
			Return(&paypal.Order{ID: ref, Status: paypal.OrderStatusCompleted, PurchaseUnits: purchaseUnits}, nil)

		status, responseType, err := service.CheckPaymentStatus(ctx, ref)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(status.Status, ShouldEqual, models.GatewayStatusCompleted)
		So(status.Amount, ShouldEqual, 250000)
	})

	Convey("An approved order is captured", t, func() {
		mockSDK.EXPECT().GetOrder(ctx, ref).
			Return(&paypal.Order{ID: ref, Status: paypal.OrderStatusApproved, PurchaseUnits: purchaseUnits}, nil)
		mockSDK.EXPECT().CaptureOrder(ctx, ref, paypal.CaptureOrderRequest{}).
			Return(&paypal.CaptureOrderResponse{Status: paypal.OrderStatusCompleted}, nil)

		status, responseType, err := service.CheckPaymentStatus(ctx, ref)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(status.Status, ShouldEqual, models.GatewayStatusCompleted)
		So(status.Amount, ShouldEqual, 250000)
	})

	Convey("A capture that does not complete is reported as failed", t, func() {
		mockSDK.EXPECT().GetOrder(ctx, ref).Return(&paypal.Order{ID: ref, Status: paypal.OrderStatusApproved}, nil)
		mockSDK.EXPECT().CaptureOrder(ctx, ref, paypal.CaptureOrderRequest{}).
			Return(&paypal.CaptureOrderResponse{Status: paypal.OrderStatusVoided}, nil)

		status, responseType, err := service.CheckPaymentStatus(ctx, ref)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(status.Status, ShouldEqual, models.GatewayStatusFailed)
	})

	Convey("A voided order is reported as cancelled", t, func() {
		mockSDK.EXPECT().GetOrder(ctx, ref).Return(&paypal.Order{ID: ref, Status: paypal.OrderStatusVoided}, nil)

		status, responseType, err := service.CheckPaymentStatus(ctx, ref)

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(status.Status, ShouldEqual, models.GatewayStatusCancelled)
	})

	Convey("Error when the order cannot be fetched", t, func() {
		mockSDK.EXPECT().GetOrder(ctx, ref).Return(nil, errors.New("not found"))

		status, responseType, err := service.CheckPaymentStatus(ctx, ref)

		So(status, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error checking payment status with PayPal")
	})
}

func TestUnitPayPalTransfer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockSDK := NewMockPayPalSDK(mockCtrl)
	service := PayPalService{Client: mockSDK, Config: *cfg}

	ctx := context.Background()

	Convey("Payout batch id returned on success", t, func() {
		var payout paypal.Payout
		mockSDK.EXPECT().CreateSinglePayout(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p paypal.Payout) (*paypal.PayoutResponse, error) {
				payout = p
				return &paypal.PayoutResponse{BatchHeader: &paypal.BatchHeader{PayoutBatchID: "batch-1"}}, nil
			})

		batchID, responseType, err := service.Transfer(ctx, "ESC-esc-1", 500000, "creator@example.com")

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(batchID, ShouldEqual, "batch-1")
		So(payout.SenderBatchHeader.SenderBatchID, ShouldEqual, "ESC-esc-1")
		So(payout.Items, ShouldHaveLength, 1)
		So(payout.Items[0].Receiver, ShouldEqual, "creator@example.com")
		So(payout.Items[0].Amount.Value, ShouldEqual, "500000")
	})

	Convey("Payment failure when the payout is rejected", t, func() {
		mockSDK.EXPECT().CreateSinglePayout(ctx, gomock.Any()).Return(nil, errors.New("insufficient funds"))

		batchID, responseType, err := service.Transfer(ctx, "ESC-esc-1", 500000, "creator@example.com")

		So(batchID, ShouldBeEmpty)
		So(responseType, ShouldEqual, PaymentFailed)
		So(err.Error(), ShouldContainSubstring, "error creating paypal payout")
	})
}
