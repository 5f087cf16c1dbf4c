package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/fixtures"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/service"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitHandleGetRecoveryCase(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	refundService = &service.RefundService{DAO: mockDao, Config: *cfg}

	Convey("Recovery case not found", t, func() {
		mockDao.EXPECT().GetRecoveryCase(gomock.Any(), "case-1").Return(nil, nil)

		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("GET", "/recovery/case-1", "", fixtures.CreatorID), map[string]string{"recovery_id": "case-1"})
		HandleGetRecoveryCase(w, req)
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Body.String(), ShouldContainSubstring, "RECOVERY_CASE_NOT_FOUND")
	})

	Convey("Another creator's case is forbidden", t, func() {
		mockDao.EXPECT().GetRecoveryCase(gomock.Any(), "case-1").Return(fixtures.GetRecoveryCase("case-1", 400000, 0), nil)

		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("GET", "/recovery/case-1", "", "someone-else"), map[string]string{"recovery_id": "case-1"})
		HandleGetRecoveryCase(w, req)
		So(w.Code, ShouldEqual, http.StatusForbidden)
	})
}

func TestUnitHandleInitRepayment(t *testing.T) {
	cfg, _ := config.Get()
	refundService = &service.RefundService{Config: *cfg}

	Convey("Request body empty", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/recovery/case-1/init", "", fixtures.CreatorID), map[string]string{"recovery_id": "case-1"})
		HandleInitRepayment(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Unsupported payment method fails validation", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/recovery/case-1/init", `{"paymentMethod":"cash"}`, fixtures.CreatorID), map[string]string{"recovery_id": "case-1"})
		HandleInitRepayment(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestUnitHandleSePayCallback(t *testing.T) {
	cfg, _ := config.Get()
	cfg.SePaySecret = "test-secret"
	refundService = &service.RefundService{Config: *cfg, SePay: &service.SePayService{Config: *cfg}}

	// The signing scheme SePay uses: HMAC-SHA256 over the fields in sorted
	// key order, joined as k=v pairs with "&".
	signCallback := func(orderRef string, amount int64, status string) string {
		payload := fmt.Sprintf("amount=%d&orderInvoiceNumber=%s&status=%s", amount, orderRef, status)
		mac := hmac.New(sha256.New, []byte(cfg.SePaySecret))
		mac.Write([]byte(payload))
		return hex.EncodeToString(mac.Sum(nil))
	}

	Convey("Request body empty", t, func() {
		w := httptest.NewRecorder()
		HandleSePayCallback(w, authenticatedRequest("POST", "/recovery/sepay/callback", "", ""))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Unsigned callback is rejected", t, func() {
		w := httptest.NewRecorder()
		body := `{"orderInvoiceNumber":"RCV-case1-123","status":"COMPLETED","amount":400000}`
		HandleSePayCallback(w, authenticatedRequest("POST", "/recovery/sepay/callback", body, ""))
		So(w.Code, ShouldEqual, http.StatusForbidden)
		So(w.Body.String(), ShouldContainSubstring, "UNAUTHORIZED")
	})

	Convey("Signed callback with an unrecognised order reference is acknowledged", t, func() {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"orderInvoiceNumber":"GARBAGE","status":"COMPLETED","amount":1000,"signature":"%s"}`,
			signCallback("GARBAGE", 1000, "COMPLETED"))
		HandleSePayCallback(w, authenticatedRequest("POST", "/recovery/sepay/callback", body, ""))
		So(w.Code, ShouldEqual, http.StatusOK)
	})
}

func TestUnitHandleRepaymentSuccess(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()
	cfg.EscrowWebURL = "https://givehub.vn"

	Convey("Missing order reference", t, func() {
		refundService = &service.RefundService{Config: *cfg}

		w := httptest.NewRecorder()
		HandleRepaymentSuccess(w, authenticatedRequest("GET", "/recovery/sepay/success", "", ""))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Verification failure redirects to the error page", t, func() {
		mockDao := dao.NewMockDAO(mockCtrl)
		mockProvider := service.NewMockPaymentProviderService(mockCtrl)
		refundService = &service.RefundService{DAO: mockDao, Config: *cfg, Providers: service.Providers{"sepay": mockProvider}}

		mockDao.EXPECT().GetRecoveryCase(gomock.Any(), "case1").
			Return(fixtures.GetRecoveryCase("case1", 400000, 0), nil)
		mockProvider.EXPECT().CheckPaymentStatus(gomock.Any(), "RCV-case1-123").
			Return(&models.StatusResponse{Status: models.GatewayStatusCancelled}, service.Success, nil)

		w := httptest.NewRecorder()
		HandleRepaymentSuccess(w, authenticatedRequest("GET", "/recovery/sepay/success?orderInvoiceNumber=RCV-case1-123", "", ""))
		So(w.Code, ShouldEqual, http.StatusSeeOther)
		So(w.Header().Get("Location"), ShouldContainSubstring, "https://givehub.vn/recovery/error")
		So(w.Header().Get("Location"), ShouldContainSubstring, "ref=RCV-case1-123")
	})
}

func TestUnitHandleRepaymentCancel(t *testing.T) {
	cfg, _ := config.Get()
	cfg.EscrowWebURL = "https://givehub.vn"
	refundService = &service.RefundService{Config: *cfg}

	Convey("Cancelled checkout redirects back to the recovery overview", t, func() {
		w := httptest.NewRecorder()
		HandleRepaymentCancel(w, authenticatedRequest("GET", "/recovery/sepay/cancel?orderInvoiceNumber=RCV-case1-123", "", ""))
		So(w.Code, ShouldEqual, http.StatusSeeOther)
		So(w.Header().Get("Location"), ShouldContainSubstring, "https://givehub.vn/recovery?")
		So(w.Header().Get("Location"), ShouldContainSubstring, "status=CANCELLED")
	})
}
