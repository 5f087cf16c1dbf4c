package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/transformers"
)

const repaymentCASAttempts = 3

// Providers is the set of gateways a creator can repay through, keyed by
// payment method name
type Providers map[string]PaymentProviderService

// GetRecoveryCaseForCaller returns a recovery case, restricted to the
// creator it is open against unless the caller is an admin
func (service *RefundService) GetRecoveryCaseForCaller(ctx context.Context, id, callerID string, isAdmin bool) (*models.RecoveryCaseResourceRest, ResponseType, error) {
	recoveryCase, err := service.DAO.GetRecoveryCase(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
	}
	if recoveryCase == nil {
		return nil, NotFound, Coded(CodeRecoveryCaseNotFound, "recovery case not found: %s", id)
	}

	if !isAdmin && recoveryCase.CreatorID != callerID {
		return nil, Forbidden, Coded(CodeUnauthorized, "caller does not own recovery case [%s]", id)
	}

	rest := transformers.RecoveryTransformer{}.TransformToRest(*recoveryCase)
	return &rest, Success, nil
}

// GetRecoveryCasesByCreator returns all recovery cases open against the
// calling creator
func (service *RefundService) GetRecoveryCasesByCreator(ctx context.Context, creatorID string) ([]models.RecoveryCaseResourceRest, ResponseType, error) {
	cases, err := service.DAO.GetRecoveryCasesByCreator(ctx, creatorID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery cases from db: [%v]", err)
	}

	rest := make([]models.RecoveryCaseResourceRest, 0, len(cases))
	for i := range cases {
		rest = append(rest, transformers.RecoveryTransformer{}.TransformToRest(cases[i]))
	}
	return rest, Success, nil
}

// InitRepayment opens a gateway checkout for the outstanding balance of a
// recovery case so the creator can repay it
func (service *RefundService) InitRepayment(ctx context.Context, caseID, creatorID, paymentMethod string) (*models.InitRepaymentResponse, ResponseType, error) {
	provider, ok := service.Providers[paymentMethod]
	if !ok {
		return nil, InvalidData, Coded(CodeValidationError, "unsupported payment method: %s", paymentMethod)
	}

	recoveryCase, err := service.DAO.GetRecoveryCase(ctx, caseID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
	}
	if recoveryCase == nil {
		return nil, NotFound, Coded(CodeRecoveryCaseNotFound, "recovery case not found: %s", caseID)
	}
	if recoveryCase.CreatorID != creatorID {
		return nil, Forbidden, Coded(CodeUnauthorized, "caller does not own recovery case [%s]", caseID)
	}
	if recoveryCase.Status == models.RecoveryStatusCompleted {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "recovery case [%s] is already completed", caseID)
	}

	outstanding := recoveryCase.TotalAmount - recoveryCase.RecoveredAmount
	orderRef := repaymentOrderRef(caseID)

	// The order reference rides on the redirect URLs because not every
	// gateway echoes it back as a query parameter of its own.
	redirectQuery := "?orderInvoiceNumber=" + orderRef

	session, responseType, err := provider.InitCheckout(ctx, models.CheckoutSpec{
		OrderRef:    orderRef,
		Amount:      outstanding,
		Currency:    "VND",
		SuccessURL:  service.Config.EscrowAPIURL + "/recovery/sepay/success" + redirectQuery,
		ErrorURL:    service.Config.EscrowAPIURL + "/recovery/sepay/error" + redirectQuery,
		CancelURL:   service.Config.EscrowAPIURL + "/recovery/sepay/cancel" + redirectQuery,
		CallbackURL: service.Config.EscrowAPIURL + "/recovery/sepay/callback",
		CustomData:  caseID,
	})
	if err != nil {
		log.Error(fmt.Errorf("error initiating repayment checkout for case [%s]: [%v]", caseID, err), log.Data{"service_response_type": responseType.String()})
		return nil, responseType, err
	}

	// Persist which gateway opened the checkout, and under what reference, so
	// the success redirect can verify settlement with that same gateway.
	checkout := &models.RecoveryCheckoutDB{
		Provider:    paymentMethod,
		OrderRef:    orderRef,
		ProviderRef: session.ProviderRef,
		CreatedAt:   time.Now().Truncate(time.Millisecond),
	}
	if err := service.DAO.SetRecoveryCheckout(ctx, caseID, checkout); err != nil {
		return nil, Error, fmt.Errorf("error storing repayment checkout for case [%s]: [%v]", caseID, err)
	}

	log.Info("initiated repayment checkout", log.Data{"recovery_case_id": caseID, "order_ref": orderRef, "amount": outstanding, "payment_method": paymentMethod})

	return &models.InitRepaymentResponse{
		CheckoutURL: session.CheckoutURL,
		FormFields:  session.FormFields,
		OrderRef:    orderRef,
	}, Success, nil
}

// RecordRepayment applies a creator repayment to a recovery case and
// immediately distributes the recovered amount to donors pro rata against
// their outstanding claims. The recovered amount is clamped at the claim
// total, is monotonically non-decreasing, and the case completes exactly when
// it reaches the claim total.
//
// Repayments carrying an order reference already on the timeline are
// no-ops: gateway delivery is at-least-once.
func (service *RefundService) RecordRepayment(ctx context.Context, caseID string, amount int64, source, orderRef, note string) (*models.RecoveryCaseResourceRest, ResponseType, error) {
	if amount <= 0 {
		return nil, InvalidData, Coded(CodeInvalidAmount, "repayment amount must be positive, got %d", amount)
	}

	var recoveryCase *models.RecoveryCaseResourceDB
	var applied int64

	for attempt := 0; ; attempt++ {
		var err error
		recoveryCase, err = service.DAO.GetRecoveryCase(ctx, caseID)
		if err != nil {
			return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
		}
		if recoveryCase == nil {
			return nil, NotFound, Coded(CodeRecoveryCaseNotFound, "recovery case not found: %s", caseID)
		}
		if recoveryCase.Status == models.RecoveryStatusCompleted {
			return nil, InvalidStatus, Coded(CodeInvalidStatus, "recovery case [%s] is already completed", caseID)
		}

		if orderRef != "" {
			duplicate, err := service.DAO.HasTimelineOrderRef(ctx, caseID, orderRef)
			if err != nil {
				return nil, Error, fmt.Errorf("error checking repayment timeline: [%v]", err)
			}
			if duplicate {
				log.Info("duplicate repayment notification ignored", log.Data{"recovery_case_id": caseID, "order_ref": orderRef})
				rest := transformers.RecoveryTransformer{}.TransformToRest(*recoveryCase)
				return &rest, Success, nil
			}
		}

		prev := recoveryCase.RecoveredAmount
		next := prev + amount
		if next > recoveryCase.TotalAmount {
			next = recoveryCase.TotalAmount
		}
		applied = next - prev

		status := models.RecoveryStatusInProgress
		if next == recoveryCase.TotalAmount {
			status = models.RecoveryStatusCompleted
		}

		entry := models.RecoveryTimelineEntryDB{
			Amount:   applied,
			Source:   source,
			OrderRef: orderRef,
			Note:     note,
			At:       time.Now().Truncate(time.Millisecond),
		}

		err = service.DAO.ApplyRepayment(ctx, caseID, prev, next, status, entry)
		if err == nil {
			recoveryCase.RecoveredAmount = next
			recoveryCase.Status = status
			recoveryCase.Timeline = append(recoveryCase.Timeline, entry)
			break
		}
		if err != dao.ErrNoMatch {
			return nil, Error, fmt.Errorf("error applying repayment: [%v]", err)
		}
		// A concurrent repayment moved the recovered amount; re-read and
		// recompute against the new baseline.
		if attempt+1 >= repaymentCASAttempts {
			return nil, Error, fmt.Errorf("error applying repayment to case [%s]: too much contention", caseID)
		}
	}

	log.Info("recorded creator repayment", log.Data{
		"recovery_case_id": caseID,
		"amount":           applied,
		"source":           source,
		"order_ref":        orderRef,
		"recovered_amount": recoveryCase.RecoveredAmount,
		"status":           recoveryCase.Status,
	})

	if applied > 0 {
		if err := service.distributeRecovered(ctx, recoveryCase, applied); err != nil {
			// The repayment itself is recorded; distribution can be
			// re-driven operationally.
			log.Error(fmt.Errorf("error distributing recovered amount for case [%s]: [%v]", caseID, err))
		}
	}

	rest := transformers.RecoveryTransformer{}.TransformToRest(*recoveryCase)
	return &rest, Success, nil
}

// distributeRecovered pays a newly recovered amount back to donors in
// proportion to what each is still owed
func (service *RefundService) distributeRecovered(ctx context.Context, recoveryCase *models.RecoveryCaseResourceDB, recovered int64) error {
	donations, err := service.DAO.GetCompletedDonationsByCampaign(ctx, recoveryCase.CampaignID)
	if err != nil {
		return fmt.Errorf("error getting donations from db: [%v]", err)
	}
	refunds, err := service.DAO.GetRefundsByCampaign(ctx, recoveryCase.CampaignID)
	if err != nil {
		return fmt.Errorf("error getting refunds from db: [%v]", err)
	}

	// Outstanding claim per donor: donated, minus the escrow refund, minus
	// recovery refunds already distributed.
	outstanding := make(map[string]int64)
	for _, donation := range donations {
		outstanding[donation.DonorID] += donation.Amount
	}
	for _, refund := range refunds {
		outstanding[refund.DonorID] -= refund.Amount
	}

	distribution := ComputeRecoveryDistribution(outstanding, recovered)
	if len(distribution) == 0 {
		return nil
	}

	now := time.Now().Truncate(time.Millisecond)
	recoveryRefunds := make([]models.RefundResourceDB, 0, len(distribution))
	for donorID, share := range distribution {
		recoveryRefunds = append(recoveryRefunds, models.RefundResourceDB{
			ID:         generateID(),
			CampaignID: recoveryCase.CampaignID,
			DonorID:    donorID,
			Amount:     share,
			Source:     models.RefundSourceRecovery,
			Status:     models.RefundStatusPending,
			OrderRef:   "REF-" + generateID(),
			CreatedAt:  now,
		})
	}

	if err := service.DAO.CreateRefunds(ctx, recoveryRefunds); err != nil {
		return fmt.Errorf("error creating recovery refunds in db: [%v]", err)
	}

	log.Info("distributed recovered amount to donors", log.Data{
		"recovery_case_id": recoveryCase.ID,
		"recovered":        recovered,
		"refunds":          len(recoveryRefunds),
	})

	service.settleRefunds(ctx, recoveryRefunds)
	return nil
}

// HandleRepaymentCallback consumes a settlement notification from SePay.
// Callbacks are untrusted input: every callback must carry a valid signature
// over the fields we act on, the case id is validated, and anything malformed
// or duplicated is swallowed as a no-op since delivery is at-least-once.
func (service *RefundService) HandleRepaymentCallback(ctx context.Context, callback models.SePayCallback) (ResponseType, error) {
	if service.SePay == nil || !service.SePay.VerifyCallbackSignature(callback) {
		log.Error(fmt.Errorf("repayment callback signature mismatch"), log.Data{"order_ref": callback.OrderInvoiceNumber})
		return Forbidden, Coded(CodeUnauthorized, "callback signature mismatch")
	}

	caseID, ok := caseIDFromOrderRef(callback.OrderInvoiceNumber)
	if !ok {
		log.Info("ignoring callback with unrecognised order reference", log.Data{"order_ref": callback.OrderInvoiceNumber})
		return Success, nil
	}

	if callback.Status != models.GatewayStatusCompleted {
		log.Info("ignoring non-completed repayment callback", log.Data{"order_ref": callback.OrderInvoiceNumber, "status": callback.Status})
		return Success, nil
	}

	_, responseType, err := service.RecordRepayment(ctx, caseID, callback.Amount, "sepay", callback.OrderInvoiceNumber, "gateway settlement callback")
	if responseType == NotFound {
		// Unknown case id on an unauthenticated endpoint: drop it.
		log.Info("ignoring callback for unknown recovery case", log.Data{"order_ref": callback.OrderInvoiceNumber})
		return Success, nil
	}
	return responseType, err
}

// VerifyAndRecordRepayment is the defensive success-redirect path: it
// re-verifies the payment with the gateway that opened the checkout and
// performs the same recording as the callback, in case the callback is
// delayed or lost.
func (service *RefundService) VerifyAndRecordRepayment(ctx context.Context, orderRef string) (*models.RecoveryCaseResourceRest, ResponseType, error) {
	caseID, ok := caseIDFromOrderRef(orderRef)
	if !ok {
		return nil, InvalidData, Coded(CodeValidationError, "unrecognised order reference: %s", orderRef)
	}

	recoveryCase, err := service.DAO.GetRecoveryCase(ctx, caseID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
	}
	if recoveryCase == nil {
		return nil, NotFound, Coded(CodeRecoveryCaseNotFound, "recovery case not found: %s", caseID)
	}

	// The stored checkout names the opening gateway and the reference it
	// keys its own records by. SePay keys by our order reference, so a case
	// without a stored checkout for this order falls back to SePay.
	providerName := "sepay"
	providerRef := orderRef
	if recoveryCase.Checkout != nil && recoveryCase.Checkout.OrderRef == orderRef {
		providerName = recoveryCase.Checkout.Provider
		providerRef = recoveryCase.Checkout.ProviderRef
	}

	provider, found := service.Providers[providerName]
	if !found {
		return nil, Error, fmt.Errorf("payment provider [%s] not configured", providerName)
	}

	status, responseType, err := provider.CheckPaymentStatus(ctx, providerRef)
	if err != nil {
		log.Error(fmt.Errorf("error verifying repayment [%s]: [%v]", orderRef, err), log.Data{"service_response_type": responseType.String()})
		return nil, responseType, err
	}

	if status.Status != models.GatewayStatusCompleted {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "repayment [%s] is not completed at the gateway: %s", orderRef, status.Status)
	}

	return service.RecordRepayment(ctx, caseID, status.Amount, providerName, orderRef, "verified on success redirect")
}

// EscalateLegalAction marks a stalled recovery case for legal follow-up.
// There is no automatic timeout to this state: it is an explicit manual
// admin step.
func (service *RefundService) EscalateLegalAction(ctx context.Context, caseID, adminID string) (*models.RecoveryCaseResourceRest, ResponseType, error) {
	recoveryCase, err := service.DAO.GetRecoveryCase(ctx, caseID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
	}
	if recoveryCase == nil {
		return nil, NotFound, Coded(CodeRecoveryCaseNotFound, "recovery case not found: %s", caseID)
	}
	if recoveryCase.Status != models.RecoveryStatusPending && recoveryCase.Status != models.RecoveryStatusInProgress {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "recovery case [%s] cannot be escalated from status [%s]", caseID, recoveryCase.Status)
	}

	err = service.DAO.UpdateRecoveryCaseStatus(ctx, caseID, recoveryCase.Status, models.RecoveryStatusLegalAction)
	if err == dao.ErrNoMatch {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "recovery case [%s] changed status before escalation", caseID)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error escalating recovery case: [%v]", err)
	}

	log.Info("escalated recovery case to legal action", log.Data{"recovery_case_id": caseID, "admin_id": adminID})

	recoveryCase.Status = models.RecoveryStatusLegalAction
	rest := transformers.RecoveryTransformer{}.TransformToRest(*recoveryCase)
	return &rest, Success, nil
}

func repaymentOrderRef(caseID string) string {
	return "RCV-" + caseID + "-" + generateID()
}

// caseIDFromOrderRef extracts the recovery case id embedded in a repayment
// order reference of the form RCV-<case>-<nonce>
func caseIDFromOrderRef(orderRef string) (string, bool) {
	parts := strings.Split(orderRef, "-")
	if len(parts) != 3 || parts[0] != "RCV" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
