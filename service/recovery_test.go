package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/fixtures"
	"github.com/givehub/escrow.api/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitGetRecoveryCaseForCaller(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	service := RefundService{DAO: mockDao, Config: *cfg}

	ctx := context.Background()
	id := "case-1"

	Convey("Error when recovery case not found", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(nil, nil)

		recoveryCase, status, err := service.GetRecoveryCaseForCaller(ctx, id, fixtures.CreatorID, false)

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, NotFound)
		So(ErrorCode(err), ShouldEqual, CodeRecoveryCaseNotFound)
	})

	Convey("Error when caller is neither the creator nor an admin", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 0), nil)

		recoveryCase, status, err := service.GetRecoveryCaseForCaller(ctx, id, "someone-else", false)

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, Forbidden)
		So(ErrorCode(err), ShouldEqual, CodeUnauthorized)
	})

	Convey("Admin can read any case", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil)

		recoveryCase, status, err := service.GetRecoveryCaseForCaller(ctx, id, "someone-else", true)

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.TotalAmount, ShouldEqual, 400000)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 100000)
	})
}

func TestUnitInitRepayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	mockProvider := NewMockPaymentProviderService(mockCtrl)
	service := RefundService{
		DAO:       mockDao,
		Config:    *cfg,
		Providers: Providers{"sepay": mockProvider},
	}

	ctx := context.Background()
	id := "case-1"

	Convey("Error when payment method is unsupported", t, func() {
		checkout, status, err := service.InitRepayment(ctx, id, fixtures.CreatorID, "cash")

		So(checkout, ShouldBeNil)
		So(status, ShouldEqual, InvalidData)
		So(ErrorCode(err), ShouldEqual, CodeValidationError)
	})

	Convey("Error when caller does not own the case", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 0), nil)

		checkout, status, err := service.InitRepayment(ctx, id, "someone-else", "sepay")

		So(checkout, ShouldBeNil)
		So(status, ShouldEqual, Forbidden)
		So(ErrorCode(err), ShouldEqual, CodeUnauthorized)
	})

	Convey("Error when the case is already completed", t, func() {
		completed := fixtures.GetRecoveryCase(id, 400000, 400000)
		completed.Status = models.RecoveryStatusCompleted
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(completed, nil)

		checkout, status, err := service.InitRepayment(ctx, id, fixtures.CreatorID, "sepay")

		So(checkout, ShouldBeNil)
		So(status, ShouldEqual, InvalidStatus)
		So(ErrorCode(err), ShouldEqual, CodeInvalidStatus)
	})

	Convey("Checkout opened for the outstanding balance and persisted on the case", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 150000), nil)

		var spec models.CheckoutSpec
		mockProvider.EXPECT().InitCheckout(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.CheckoutSpec) (*models.CheckoutSession, ResponseType, error) {
				spec = s
				return &models.CheckoutSession{CheckoutURL: "https://pay.sepay.vn/checkout/abc", ProviderRef: s.OrderRef}, Success, nil
			})

		var stored *models.RecoveryCheckoutDB
		mockDao.EXPECT().SetRecoveryCheckout(ctx, id, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, c *models.RecoveryCheckoutDB) error {
				stored = c
				return nil
			})

		checkout, status, err := service.InitRepayment(ctx, id, fixtures.CreatorID, "sepay")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(checkout.CheckoutURL, ShouldEqual, "https://pay.sepay.vn/checkout/abc")
		So(spec.Amount, ShouldEqual, 250000)
		So(spec.CustomData, ShouldEqual, id)
		So(checkout.OrderRef, ShouldStartWith, "RCV-"+id+"-")
		So(spec.SuccessURL, ShouldEndWith, "/recovery/sepay/success?orderInvoiceNumber="+checkout.OrderRef)
		So(spec.ErrorURL, ShouldEndWith, "/recovery/sepay/error?orderInvoiceNumber="+checkout.OrderRef)
		So(stored.Provider, ShouldEqual, "sepay")
		So(stored.OrderRef, ShouldEqual, checkout.OrderRef)
		So(stored.ProviderRef, ShouldEqual, checkout.OrderRef)
	})
}

func TestUnitRecordRepayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	mockGateway := NewMockPaymentProviderService(mockCtrl)
	service := RefundService{DAO: mockDao, Config: *cfg, Gateway: mockGateway}

	ctx := context.Background()
	id := "case-1"

	expectDistribution := func(refundAmount int64) {
		mockDao.EXPECT().GetCompletedDonationsByCampaign(ctx, fixtures.CampaignID).
			Return([]models.DonationResourceDB{fixtures.GetCompletedDonation("don-1", "donor-1", 400000)}, nil)
		mockDao.EXPECT().GetRefundsByCampaign(ctx, fixtures.CampaignID).Return(nil, nil)
		mockDao.EXPECT().CreateRefunds(ctx, gomock.Any()).Return(nil)
		mockGateway.EXPECT().Transfer(ctx, gomock.Any(), refundAmount, "donor-1").Return("settle-1", Success, nil)
		mockDao.EXPECT().UpdateRefundStatus(ctx, gomock.Any(), models.RefundStatusSettled).Return(nil)
	}

	Convey("Error when amount is not positive", t, func() {
		recoveryCase, status, err := service.RecordRepayment(ctx, id, 0, "sepay", "", "")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidData)
		So(ErrorCode(err), ShouldEqual, CodeInvalidAmount)
	})

	Convey("Error when the case is already completed", t, func() {
		completed := fixtures.GetRecoveryCase(id, 400000, 400000)
		completed.Status = models.RecoveryStatusCompleted
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(completed, nil)

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 1000, "sepay", "", "")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidStatus)
		So(ErrorCode(err), ShouldEqual, CodeInvalidStatus)
	})

	Convey("A repayment order reference already on the timeline is a no-op", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil)
		mockDao.EXPECT().HasTimelineOrderRef(ctx, id, "RCV-case-1-123").Return(true, nil)

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 50000, "sepay", "RCV-case-1-123", "")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 100000)
	})

	Convey("Repayment applied and distributed to donors", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil)
		mockDao.EXPECT().HasTimelineOrderRef(ctx, id, "RCV-case-1-456").Return(false, nil)

		var entry models.RecoveryTimelineEntryDB
		mockDao.EXPECT().ApplyRepayment(ctx, id, int64(100000), int64(150000), models.RecoveryStatusInProgress, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, _ int64, _ string, e models.RecoveryTimelineEntryDB) error {
				entry = e
				return nil
			})
		expectDistribution(int64(50000))

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 50000, "sepay", "RCV-case-1-456", "gateway settlement callback")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 150000)
		So(recoveryCase.Status, ShouldEqual, models.RecoveryStatusInProgress)
		So(entry.Amount, ShouldEqual, 50000)
		So(entry.OrderRef, ShouldEqual, "RCV-case-1-456")
	})

	Convey("Overpayment is clamped at the claim total and completes the case", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 390000), nil)
		mockDao.EXPECT().ApplyRepayment(ctx, id, int64(390000), int64(400000), models.RecoveryStatusCompleted, gomock.Any()).Return(nil)
		expectDistribution(int64(10000))

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 50000, "bank_transfer", "", "manual settlement")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 400000)
		So(recoveryCase.Status, ShouldEqual, models.RecoveryStatusCompleted)
	})

	Convey("A concurrent repayment forces a re-read and recompute", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil)
		mockDao.EXPECT().ApplyRepayment(ctx, id, int64(100000), int64(150000), models.RecoveryStatusInProgress, gomock.Any()).
			Return(dao.ErrNoMatch)
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 120000), nil)
		mockDao.EXPECT().ApplyRepayment(ctx, id, int64(120000), int64(170000), models.RecoveryStatusInProgress, gomock.Any()).Return(nil)
		expectDistribution(int64(50000))

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 50000, "sepay", "", "")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 170000)
	})

	Convey("Sustained contention gives up with an error", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil).Times(repaymentCASAttempts)
		mockDao.EXPECT().ApplyRepayment(ctx, id, int64(100000), int64(150000), models.RecoveryStatusInProgress, gomock.Any()).
			Return(dao.ErrNoMatch).Times(repaymentCASAttempts)

		recoveryCase, status, err := service.RecordRepayment(ctx, id, 50000, "sepay", "", "")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "too much contention")
	})
}

func TestUnitHandleRepaymentCallback(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	cfg.SePaySecret = "test-secret"

	mockDao := dao.NewMockDAO(mockCtrl)
	service := RefundService{
		DAO:    mockDao,
		Config: *cfg,
		SePay:  &SePayService{Config: *cfg},
	}

	ctx := context.Background()

	signedCallback := func(orderRef string, amount int64, gatewayStatus string) models.SePayCallback {
		callback := fixtures.GetSePayCallback(orderRef, amount, gatewayStatus)
		callback.Signature = service.SePay.sign(map[string]string{
			"orderInvoiceNumber": callback.OrderInvoiceNumber,
			"status":             callback.Status,
			"amount":             fmt.Sprintf("%d", callback.Amount),
		})
		return callback
	}

	Convey("Callback with a bad signature is rejected", t, func() {
		callback := fixtures.GetSePayCallback("RCV-case-1-123", 50000, models.GatewayStatusCompleted)
		callback.Signature = "not-a-valid-signature"

		status, err := service.HandleRepaymentCallback(ctx, callback)

		So(status, ShouldEqual, Forbidden)
		So(ErrorCode(err), ShouldEqual, CodeUnauthorized)
	})

	Convey("Unsigned callback claiming a completed settlement is rejected", t, func() {
		// No DAO expectations: an unsigned payload must never reach recording.
		status, err := service.HandleRepaymentCallback(ctx, fixtures.GetSePayCallback("RCV-case1-123", 400000, models.GatewayStatusCompleted))

		So(status, ShouldEqual, Forbidden)
		So(ErrorCode(err), ShouldEqual, CodeUnauthorized)
	})

	Convey("Unrecognised order reference is swallowed", t, func() {
		status, err := service.HandleRepaymentCallback(ctx, signedCallback("GARBAGE", 50000, models.GatewayStatusCompleted))

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
	})

	Convey("Non-completed settlement is swallowed", t, func() {
		status, err := service.HandleRepaymentCallback(ctx, signedCallback("RCV-case1-123", 50000, models.GatewayStatusFailed))

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
	})

	Convey("Callback for an unknown case is swallowed", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(nil, nil)

		status, err := service.HandleRepaymentCallback(ctx, signedCallback("RCV-case1-123", 50000, models.GatewayStatusCompleted))

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
	})
}

func TestUnitVerifyAndRecordRepayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	mockProvider := NewMockPaymentProviderService(mockCtrl)
	mockPayPal := NewMockPaymentProviderService(mockCtrl)
	mockGateway := NewMockPaymentProviderService(mockCtrl)
	service := RefundService{
		DAO:       mockDao,
		Config:    *cfg,
		Gateway:   mockGateway,
		Providers: Providers{"sepay": mockProvider, "paypal": mockPayPal},
	}

	ctx := context.Background()

	expectDistribution := func(refundAmount int64) {
		mockDao.EXPECT().GetCompletedDonationsByCampaign(ctx, fixtures.CampaignID).
			Return([]models.DonationResourceDB{fixtures.GetCompletedDonation("don-1", "donor-1", 400000)}, nil)
		mockDao.EXPECT().GetRefundsByCampaign(ctx, fixtures.CampaignID).Return(nil, nil)
		mockDao.EXPECT().CreateRefunds(ctx, gomock.Any()).Return(nil)
		mockGateway.EXPECT().Transfer(ctx, gomock.Any(), refundAmount, "donor-1").Return("settle-1", Success, nil)
		mockDao.EXPECT().UpdateRefundStatus(ctx, gomock.Any(), models.RefundStatusSettled).Return(nil)
	}

	Convey("Error when the order reference is unrecognised", t, func() {
		recoveryCase, status, err := service.VerifyAndRecordRepayment(ctx, "GARBAGE")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidData)
		So(ErrorCode(err), ShouldEqual, CodeValidationError)
	})

	Convey("Error when the embedded case does not exist", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(nil, nil)

		recoveryCase, status, err := service.VerifyAndRecordRepayment(ctx, "RCV-case1-123")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, NotFound)
		So(ErrorCode(err), ShouldEqual, CodeRecoveryCaseNotFound)
	})

	Convey("Error when the gateway does not report completion", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(fixtures.GetRecoveryCase("case1", 400000, 0), nil)
		mockProvider.EXPECT().CheckPaymentStatus(ctx, "RCV-case1-123").
			Return(&models.StatusResponse{Status: models.GatewayStatusCancelled}, Success, nil)

		recoveryCase, status, err := service.VerifyAndRecordRepayment(ctx, "RCV-case1-123")

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidStatus)
		So(ErrorCode(err), ShouldEqual, CodeInvalidStatus)
	})

	Convey("Completed payment is recorded against the embedded case", t, func() {
		stored := fixtures.GetRecoveryCase("case1", 400000, 0)

		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(stored, nil)
		mockProvider.EXPECT().CheckPaymentStatus(ctx, "RCV-case1-123").
			Return(&models.StatusResponse{Status: models.GatewayStatusCompleted, Amount: 50000}, Success, nil)
		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(stored, nil)
		mockDao.EXPECT().HasTimelineOrderRef(ctx, "case1", "RCV-case1-123").Return(false, nil)
		mockDao.EXPECT().ApplyRepayment(ctx, "case1", int64(0), int64(50000), models.RecoveryStatusInProgress, gomock.Any()).Return(nil)
		expectDistribution(int64(50000))

		recoveryCase, status, err := service.VerifyAndRecordRepayment(ctx, "RCV-case1-123")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 50000)
	})

	Convey("A PayPal checkout is verified with PayPal under its own reference", t, func() {
		stored := fixtures.GetRecoveryCase("case1", 400000, 0)
		stored.Checkout = &models.RecoveryCheckoutDB{
			Provider:    "paypal",
			OrderRef:    "RCV-case1-123",
			ProviderRef: "PAYPAL-ORDER-9",
		}

		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(stored, nil)
		mockPayPal.EXPECT().CheckPaymentStatus(ctx, "PAYPAL-ORDER-9").
			Return(&models.StatusResponse{Status: models.GatewayStatusCompleted, Amount: 50000}, Success, nil)
		mockDao.EXPECT().GetRecoveryCase(ctx, "case1").Return(stored, nil)
		mockDao.EXPECT().HasTimelineOrderRef(ctx, "case1", "RCV-case1-123").Return(false, nil)

		var entry models.RecoveryTimelineEntryDB
		mockDao.EXPECT().ApplyRepayment(ctx, "case1", int64(0), int64(50000), models.RecoveryStatusInProgress, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, _ int64, _ string, e models.RecoveryTimelineEntryDB) error {
				entry = e
				return nil
			})
		expectDistribution(int64(50000))

		recoveryCase, status, err := service.VerifyAndRecordRepayment(ctx, "RCV-case1-123")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.RecoveredAmount, ShouldEqual, 50000)
		So(entry.Source, ShouldEqual, "paypal")
	})
}

func TestUnitEscalateLegalAction(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	service := RefundService{DAO: mockDao, Config: *cfg}

	ctx := context.Background()
	id := "case-1"

	Convey("Error when the case is already terminal", t, func() {
		completed := fixtures.GetRecoveryCase(id, 400000, 400000)
		completed.Status = models.RecoveryStatusCompleted
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(completed, nil)

		recoveryCase, status, err := service.EscalateLegalAction(ctx, id, fixtures.AdminID)

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidStatus)
		So(ErrorCode(err), ShouldEqual, CodeInvalidStatus)
	})

	Convey("A stalled case is escalated", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 100000), nil)
		mockDao.EXPECT().UpdateRecoveryCaseStatus(ctx, id, models.RecoveryStatusInProgress, models.RecoveryStatusLegalAction).Return(nil)

		recoveryCase, status, err := service.EscalateLegalAction(ctx, id, fixtures.AdminID)

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(recoveryCase.Status, ShouldEqual, models.RecoveryStatusLegalAction)
	})

	Convey("Error when something else wins the status race", t, func() {
		mockDao.EXPECT().GetRecoveryCase(ctx, id).Return(fixtures.GetRecoveryCase(id, 400000, 0), nil)
		mockDao.EXPECT().UpdateRecoveryCaseStatus(ctx, id, models.RecoveryStatusPending, models.RecoveryStatusLegalAction).
			Return(dao.ErrNoMatch)

		recoveryCase, status, err := service.EscalateLegalAction(ctx, id, fixtures.AdminID)

		So(recoveryCase, ShouldBeNil)
		So(status, ShouldEqual, InvalidStatus)
		So(ErrorCode(err), ShouldEqual, CodeInvalidStatus)
	})
}

func TestUnitCaseIDFromOrderRef(t *testing.T) {
	Convey("Order reference parsing", t, func() {
		caseID, ok := caseIDFromOrderRef("RCV-abc123-9999999")
		So(ok, ShouldBeTrue)
		So(caseID, ShouldEqual, "abc123")

		_, ok = caseIDFromOrderRef("ESC-abc123")
		So(ok, ShouldBeFalse)

		_, ok = caseIDFromOrderRef("RCV--123")
		So(ok, ShouldBeFalse)

		_, ok = caseIDFromOrderRef(fmt.Sprintf("RCV-%s", "missing-nonce-part-extra"))
		So(ok, ShouldBeFalse)
	})
}
