package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/interceptors"
	"github.com/givehub/escrow.api/service"
)

var escrowService *service.EscrowService
var refundService *service.RefundService
var sePayService *service.SePayService

// Register defines the route mappings for the main router and it's
// subrouters. The DAO and PayPal client are built by the caller since both
// need I/O to come up. The escrow service is returned so the caller can hang
// the voting sweep off the same instance.
func Register(mainRouter *mux.Router, cfg config.Config, m dao.DAO, paypalClient service.PayPalSDK) *service.EscrowService {
	sePayService = &service.SePayService{Config: cfg}

	payPalService := &service.PayPalService{Client: paypalClient, Config: cfg}

	escrowService = &service.EscrowService{
		DAO:     m,
		Config:  cfg,
		Gateway: sePayService,
	}

	refundService = &service.RefundService{
		DAO:     m,
		Config:  cfg,
		Gateway: sePayService,
		Providers: service.Providers{
			"sepay":  sePayService,
			"paypal": payPalService,
		},
		SePay: sePayService,
	}

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	// Create subrouters. Routes differ in who may call them, so the router is
	// split up to allow per-subrouter middleware.

	// the admin review queue is a GET on the collection, so needs to be it's
	// own subrouter to pick up the admin interceptor
	listEscrowRouter := mainRouter.PathPrefix("/escrow").Methods("GET").Subrouter()
	listEscrowRouter.HandleFunc("", HandleGetEscrowsByStatus).Name("list-escrows")

	// create-escrow, get-escrow and the donor endpoints need user auth only
	rootEscrowRouter := mainRouter.PathPrefix("/escrow").Subrouter()
	rootEscrowRouter.HandleFunc("", HandleCreateEscrow).Methods("POST").Name("create-escrow")
	rootEscrowRouter.HandleFunc("/{escrow_id}", HandleGetEscrow).Methods("GET").Name("get-escrow")
	rootEscrowRouter.HandleFunc("/{escrow_id}/vote", HandleSubmitVote).Methods("POST").Name("submit-vote")
	rootEscrowRouter.HandleFunc("/{escrow_id}/tally", HandleGetTally).Methods("GET").Name("get-tally")
	rootEscrowRouter.HandleFunc("/{escrow_id}/release", HandleReleaseEscrow).Methods("POST").Name("release-escrow")

	// the admin decision endpoints need the escrow admin role, so need their
	// own subrouter
	adminEscrowRouter := mainRouter.PathPrefix("/escrow/{escrow_id}").Subrouter()
	adminEscrowRouter.HandleFunc("/extend-vote", HandleExtendVoting).Methods("POST").Name("extend-vote")
	adminEscrowRouter.HandleFunc("/approve", HandleApproveEscrow).Methods("POST").Name("approve-escrow")
	adminEscrowRouter.HandleFunc("/reject", HandleRejectEscrow).Methods("POST").Name("reject-escrow")

	// campaign cancellation is admin only
	cancelRouter := mainRouter.PathPrefix("/campaigns/{campaign_id}/cancel").Subrouter()
	cancelRouter.HandleFunc("", HandleCancelCampaign).Methods("POST").Name("cancel-campaign")

	// gateway callback and browser redirect endpoints are reached from
	// outside the platform, so must not be intercepted by the auth
	// interceptors. Registered ahead of the recovery subrouter so "sepay"
	// never binds as a recovery_id.
	callbackRouter := mainRouter.PathPrefix("/recovery/sepay").Subrouter()
	callbackRouter.HandleFunc("/callback", HandleSePayCallback).Methods("POST").Name("handle-sepay-callback")
	callbackRouter.HandleFunc("/success", HandleRepaymentSuccess).Methods("GET").Name("handle-sepay-success")
	callbackRouter.HandleFunc("/error", HandleRepaymentError).Methods("GET").Name("handle-sepay-error")
	callbackRouter.HandleFunc("/cancel", HandleRepaymentCancel).Methods("GET").Name("handle-sepay-cancel")

	// recovery endpoints for the creator repaying their debt
	recoveryRouter := mainRouter.PathPrefix("/recovery").Subrouter()
	recoveryRouter.HandleFunc("/creator", HandleGetRecoveryCasesForCreator).Methods("GET").Name("get-creator-recovery-cases")
	recoveryRouter.HandleFunc("/{recovery_id}", HandleGetRecoveryCase).Methods("GET").Name("get-recovery-case")
	recoveryRouter.HandleFunc("/{recovery_id}/init", HandleInitRepayment).Methods("POST").Name("init-repayment")

	// marking a case for legal action is admin only
	legalActionRouter := mainRouter.PathPrefix("/recovery/{recovery_id}/legal-action").Subrouter()
	legalActionRouter.HandleFunc("", HandleEscalateLegalAction).Methods("POST").Name("escalate-legal-action")

	// Set middleware for subrouters
	listEscrowRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor, interceptors.AdminAuthenticationInterceptor)
	rootEscrowRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor)
	adminEscrowRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor, interceptors.AdminAuthenticationInterceptor)
	cancelRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor, interceptors.AdminAuthenticationInterceptor)
	recoveryRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor)
	legalActionRouter.Use(log.Handler, interceptors.UserAuthenticationInterceptor, interceptors.AdminAuthenticationInterceptor)
	callbackRouter.Use(log.Handler)

	return escrowService
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
