package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/helpers"
	"github.com/givehub/escrow.api/interceptors"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/utils"
)

// HandleGetRecoveryCasesForCreator lists the recovery cases open against the
// authenticated creator
func HandleGetRecoveryCasesForCreator(w http.ResponseWriter, req *http.Request) {
	cases, responseType, err := refundService.GetRecoveryCasesByCreator(req.Context(), interceptors.CallerID(req))
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing recovery cases: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, cases, http.StatusOK)
}

// HandleGetRecoveryCase retrieves a single recovery case for its creator or
// an admin
func HandleGetRecoveryCase(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["recovery_id"]
	isAdmin := helpers.IsRoleAuthorised(req, helpers.AdminEscrowRole)

	recoveryCase, responseType, err := refundService.GetRecoveryCaseForCaller(req.Context(), id, interceptors.CallerID(req), isAdmin)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting recovery case: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, recoveryCase, http.StatusOK)
	log.InfoR(req, "Successful GET request for recovery case", log.Data{"recovery_case_id": id})
}

// HandleInitRepayment opens a gateway checkout the creator completes to repay
// part of their recovery debt
func HandleInitRepayment(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["recovery_id"]

	var initRequest models.InitRepaymentRequest
	if !decodeBody(w, req, &initRequest) {
		return
	}

	checkout, responseType, err := refundService.InitRepayment(req.Context(), id, interceptors.CallerID(req), initRequest.PaymentMethod)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error initiating repayment: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, checkout, http.StatusCreated)
	log.InfoR(req, "Successful POST request to open repayment checkout", log.Data{"recovery_case_id": id, "order_ref": checkout.OrderRef, "payment_method": initRequest.PaymentMethod})
}

// HandleEscalateLegalAction marks a recovery case as escalated to legal
// action
func HandleEscalateLegalAction(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["recovery_id"]

	recoveryCase, responseType, err := refundService.EscalateLegalAction(req.Context(), id, interceptors.CallerID(req))
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error escalating recovery case: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, recoveryCase, http.StatusOK)
	log.InfoR(req, "Successful POST request to escalate recovery case", log.Data{"recovery_case_id": id})
}

// HandleSePayCallback records a settlement notification delivered by SePay.
// Delivery is at-least-once, so replays are acknowledged without reprocessing.
func HandleSePayCallback(w http.ResponseWriter, req *http.Request) {
	var callback models.SePayCallback
	if !decodeBody(w, req, &callback) {
		return
	}

	responseType, err := refundService.HandleRepaymentCallback(req.Context(), callback)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error handling sepay callback: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	log.InfoR(req, "Successfully handled sepay callback", log.Data{"order_ref": callback.OrderInvoiceNumber, "callback_status": callback.Status})
}

// HandleRepaymentSuccess handles the browser returning from a completed SePay
// checkout. The payment status is re-verified with the gateway before the
// repayment is recorded, as callbacks and redirects race.
func HandleRepaymentSuccess(w http.ResponseWriter, req *http.Request) {
	orderRef := req.URL.Query().Get("orderInvoiceNumber")
	if orderRef == "" {
		log.ErrorR(req, fmt.Errorf("order reference not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	recoveryCase, responseType, err := refundService.VerifyAndRecordRepayment(req.Context(), orderRef)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error verifying repayment: [%v]", err), log.Data{"service_response_type": responseType.String()})
		redirectUser(w, req, refundService.Config.EscrowWebURL+"/recovery/error", models.RedirectParams{Ref: orderRef, Status: models.GatewayStatusFailed})
		return
	}

	log.InfoR(req, "Successfully recorded repayment", log.Data{"order_ref": orderRef, "recovery_case_id": recoveryCase.ID, "recovery_status": recoveryCase.Status})
	redirectUser(w, req, refundService.Config.EscrowWebURL+"/recovery/"+recoveryCase.ID, models.RedirectParams{Ref: orderRef, Status: models.GatewayStatusCompleted})
}

// HandleRepaymentError handles the browser returning from a failed checkout
func HandleRepaymentError(w http.ResponseWriter, req *http.Request) {
	orderRef := req.URL.Query().Get("orderInvoiceNumber")
	log.InfoR(req, "Repayment checkout failed", log.Data{"order_ref": orderRef})
	redirectUser(w, req, refundService.Config.EscrowWebURL+"/recovery/error", models.RedirectParams{Ref: orderRef, Status: models.GatewayStatusFailed})
}

// HandleRepaymentCancel handles the browser returning from an abandoned
// checkout
func HandleRepaymentCancel(w http.ResponseWriter, req *http.Request) {
	orderRef := req.URL.Query().Get("orderInvoiceNumber")
	log.InfoR(req, "Repayment checkout cancelled", log.Data{"order_ref": orderRef})
	redirectUser(w, req, refundService.Config.EscrowWebURL+"/recovery", models.RedirectParams{Ref: orderRef, Status: models.GatewayStatusCancelled})
}

// redirectUser redirects the user to the web frontend with query params
func redirectUser(w http.ResponseWriter, r *http.Request, redirectURI string, params models.RedirectParams) {
	req, err := http.NewRequest("GET", redirectURI, nil)
	if err != nil {
		log.ErrorR(r, fmt.Errorf("error redirecting user: [%s]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	query := req.URL.Query()
	query.Add("ref", params.Ref)
	query.Add("status", params.Status)

	generatedURL := fmt.Sprintf("%s?%s", redirectURI, query.Encode())
	log.InfoR(r, "Redirecting to:", log.Data{"generated_url": generatedURL})

	http.Redirect(w, r, generatedURL, http.StatusSeeOther)
}
