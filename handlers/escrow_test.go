package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/fixtures"
	"github.com/givehub/escrow.api/helpers"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/service"

	. "github.com/smartystreets/goconvey/convey"
)

func authenticatedRequest(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(context.WithValue(req.Context(), helpers.ContextKeyUserID, userID))
}

func TestUnitHandleCreateEscrow(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	escrowService = &service.EscrowService{DAO: mockDao, Config: *cfg}

	Convey("Request body empty", t, func() {
		w := httptest.NewRecorder()
		HandleCreateEscrow(w, authenticatedRequest("POST", "/escrow", "", fixtures.CreatorID))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request body invalid", t, func() {
		w := httptest.NewRecorder()
		HandleCreateEscrow(w, authenticatedRequest("POST", "/escrow", `{"amount":0}`, fixtures.CreatorID))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Campaign not found", t, func() {
		mockDao.EXPECT().GetCampaign(gomock.Any(), "missing").Return(nil, nil)

		w := httptest.NewRecorder()
		body := `{"campaign_id":"missing","amount":500000,"reason":"phase one supplies"}`
		HandleCreateEscrow(w, authenticatedRequest("POST", "/escrow", body, fixtures.CreatorID))
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Body.String(), ShouldContainSubstring, "CAMPAIGN_NOT_FOUND")
	})
}

func TestUnitHandleGetEscrow(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	escrowService = &service.EscrowService{DAO: mockDao, Config: *cfg}

	Convey("Withdrawal request not found", t, func() {
		mockDao.EXPECT().GetEscrowResource(gomock.Any(), "esc-1").Return(nil, nil)

		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("GET", "/escrow/esc-1", "", fixtures.CreatorID), map[string]string{"escrow_id": "esc-1"})
		HandleGetEscrow(w, req)
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Body.String(), ShouldContainSubstring, "ESCROW_NOT_FOUND")
	})
}

func TestUnitHandleGetEscrowsByStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	escrowService = &service.EscrowService{DAO: mockDao, Config: *cfg}

	Convey("Review queue defaults to awaiting-decision requests", t, func() {
		mockDao.EXPECT().GetEscrowResourcesByStatus(gomock.Any(), models.EscrowStatusVotingCompleted).Return(nil, nil)

		w := httptest.NewRecorder()
		HandleGetEscrowsByStatus(w, authenticatedRequest("GET", "/escrow", "", fixtures.AdminID))
		So(w.Code, ShouldEqual, http.StatusOK)
	})

	Convey("Explicit status filter is passed through", t, func() {
		mockDao.EXPECT().GetEscrowResourcesByStatus(gomock.Any(), models.EscrowStatusReleased).Return(nil, nil)

		w := httptest.NewRecorder()
		HandleGetEscrowsByStatus(w, authenticatedRequest("GET", "/escrow?status=released", "", fixtures.AdminID))
		So(w.Code, ShouldEqual, http.StatusOK)
	})
}

func TestUnitHandleSubmitVote(t *testing.T) {
	cfg, _ := config.Get()
	escrowService = &service.EscrowService{Config: *cfg}

	Convey("Vote value outside approve/reject fails validation", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/escrow/esc-1/vote", `{"value":"abstain"}`, "donor-1"), map[string]string{"escrow_id": "esc-1"})
		HandleSubmitVote(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "VALIDATION_ERROR")
	})
}

func TestUnitHandleExtendVoting(t *testing.T) {
	cfg, _ := config.Get()
	escrowService = &service.EscrowService{Config: *cfg}

	Convey("Extension outside the allowed day counts fails validation", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/escrow/esc-1/extend-vote", `{"extension_days":4}`, fixtures.AdminID), map[string]string{"escrow_id": "esc-1"})
		HandleExtendVoting(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestUnitHandleRejectEscrow(t *testing.T) {
	cfg, _ := config.Get()
	escrowService = &service.EscrowService{Config: *cfg}

	Convey("Rejection without a reason fails validation", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/escrow/esc-1/reject", `{}`, fixtures.AdminID), map[string]string{"escrow_id": "esc-1"})
		HandleRejectEscrow(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestUnitHandleReleaseEscrow(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	escrowService = &service.EscrowService{DAO: mockDao, Config: *cfg}

	Convey("Release without proof images fails validation", t, func() {
		w := httptest.NewRecorder()
		req := mux.SetURLVars(authenticatedRequest("POST", "/escrow/esc-1/release", `{"disbursement_proof_images":[]}`, fixtures.CreatorID), map[string]string{"escrow_id": "esc-1"})
		HandleReleaseEscrow(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Release of an unapproved withdrawal request is a conflict", t, func() {
		escrow := fixtures.GetEscrowInStatus("esc-1", models.EscrowStatusVotingCompleted, 500000)
		mockDao.EXPECT().GetEscrowResource(gomock.Any(), "esc-1").Return(escrow, nil)

		w := httptest.NewRecorder()
		body := `{"disbursement_proof_images":["https://cdn.givehub.vn/proof/1.jpg"]}`
		req := mux.SetURLVars(authenticatedRequest("POST", "/escrow/esc-1/release", body, fixtures.CreatorID), map[string]string{"escrow_id": "esc-1"})
		HandleReleaseEscrow(w, req)
		So(w.Code, ShouldEqual, http.StatusConflict)
	})
}
