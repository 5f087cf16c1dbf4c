package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/models"
)

// SePayService handles the specific functionality of integrating the SePay
// hosted checkout and transfer APIs. SePay publishes no Go SDK so the wire
// calls are made directly.
type SePayService struct {
	Config config.Config
}

// InitCheckout opens a SePay hosted checkout for the supplied spec
func (s *SePayService) InitCheckout(ctx context.Context, spec models.CheckoutSpec) (*models.CheckoutSession, ResponseType, error) {
	sepayRequest := models.OutgoingSePayRequest{
		MerchantID:         s.Config.SePayMerchantID,
		OrderInvoiceNumber: spec.OrderRef,
		Amount:             spec.Amount,
		Currency:           spec.Currency,
		SuccessURL:         spec.SuccessURL,
		ErrorURL:           spec.ErrorURL,
		CancelURL:          spec.CancelURL,
		CallbackURL:        spec.CallbackURL,
		CustomData:         spec.CustomData,
	}
	sepayRequest.Signature = s.sign(map[string]string{
		"merchant_id":        sepayRequest.MerchantID,
		"orderInvoiceNumber": sepayRequest.OrderInvoiceNumber,
		"amount":             fmt.Sprintf("%d", sepayRequest.Amount),
		"currency":           sepayRequest.Currency,
	})

	requestBody, err := json.Marshal(sepayRequest)
	if err != nil {
		return nil, Error, fmt.Errorf("error marshalling SePay request: [%s]", err)
	}

	request, err := http.NewRequestWithContext(ctx, "POST", s.Config.SePayURL+"/v1/checkout", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, Error, fmt.Errorf("error generating request for SePay: [%s]", err)
	}
	request.Header.Add("accept", "application/json")
	request.Header.Add("content-type", "application/json")

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, Error, fmt.Errorf("error sending request to SePay to open checkout: [%s]", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from SePay: [%s]", err)
	}

	sepayResponse := &models.IncomingSePayResponse{}
	err = json.Unmarshal(body, sepayResponse)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from SePay: [%s]", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, Error, fmt.Errorf("error status [%v] back from SePay: [%s]", resp.StatusCode, sepayResponse.Description)
	}

	return &models.CheckoutSession{
		CheckoutURL: sepayResponse.CheckoutURL,
		FormFields:  sepayResponse.FormFields,
		ProviderRef: spec.OrderRef,
	}, Success, nil
}

// CheckPaymentStatus queries SePay for the settlement status of a checkout,
// keyed by the order invoice number
func (s *SePayService) CheckPaymentStatus(ctx context.Context, ref string) (*models.StatusResponse, ResponseType, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", s.Config.SePayURL+"/v1/checkout/"+ref, nil)
	if err != nil {
		return nil, Error, fmt.Errorf("error generating request for SePay: [%s]", err)
	}
	request.Header.Add("accept", "application/json")

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, Error, fmt.Errorf("error sending request to SePay to check payment status: [%s]", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from SePay when checking payment status: [%s]", err)
	}

	statusResponse := &models.SePayStatusResponse{}
	err = json.Unmarshal(body, statusResponse)
	if err != nil {
		return nil, Error, fmt.Errorf("error reading response from SePay when checking payment status: [%s]", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, Error, fmt.Errorf("error status [%v] back from SePay when checking payment status", resp.StatusCode)
	}

	return &models.StatusResponse{Status: statusResponse.Status, Amount: statusResponse.Amount}, Success, nil
}

// Transfer pays out from the platform account to a recipient through SePay
func (s *SePayService) Transfer(ctx context.Context, orderRef string, amount int64, recipientID string) (string, ResponseType, error) {
	transferRequest := map[string]string{
		"merchant_id":        s.Config.SePayMerchantID,
		"orderInvoiceNumber": orderRef,
		"amount":             fmt.Sprintf("%d", amount),
		"recipient":          recipientID,
	}
	transferRequest["signature"] = s.sign(transferRequest)

	requestBody, err := json.Marshal(transferRequest)
	if err != nil {
		return "", Error, fmt.Errorf("error marshalling SePay transfer request: [%s]", err)
	}

	request, err := http.NewRequestWithContext(ctx, "POST", s.Config.SePayURL+"/v1/transfer", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", Error, fmt.Errorf("error generating transfer request for SePay: [%s]", err)
	}
	request.Header.Add("accept", "application/json")
	request.Header.Add("content-type", "application/json")

	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return "", PaymentFailed, fmt.Errorf("error sending transfer request to SePay: [%s]", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", PaymentFailed, fmt.Errorf("error reading transfer response from SePay: [%s]", err)
	}

	var transferResponse struct {
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
		Description   string `json:"description"`
	}
	err = json.Unmarshal(body, &transferResponse)
	if err != nil {
		return "", PaymentFailed, fmt.Errorf("error reading transfer response from SePay: [%s]", err)
	}
	if resp.StatusCode != http.StatusOK || transferResponse.Status != models.GatewayStatusCompleted {
		return "", PaymentFailed, fmt.Errorf("error status [%v] back from SePay transfer: [%s]", resp.StatusCode, transferResponse.Description)
	}

	return transferResponse.TransactionID, Success, nil
}

// VerifyCallbackSignature checks a callback's HMAC against the shared secret.
// Callbacks arrive unauthenticated so an invalid signature means the payload
// must be discarded.
func (s *SePayService) VerifyCallbackSignature(callback models.SePayCallback) bool {
	expected := s.sign(map[string]string{
		"orderInvoiceNumber": callback.OrderInvoiceNumber,
		"status":             callback.Status,
		"amount":             fmt.Sprintf("%d", callback.Amount),
	})
	return hmac.Equal([]byte(expected), []byte(callback.Signature))
}

// sign computes an HMAC-SHA256 over the fields in sorted key order, the
// scheme SePay requires for all signed requests
func (s *SePayService) sign(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, []byte(s.Config.SePaySecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}
