package handlers

import (
	"net/http"

	"github.com/givehub/escrow.api/service"
	"github.com/givehub/escrow.api/utils"
)

// writeServiceError maps a service outcome onto an HTTP status and writes the
// coded error body
func writeServiceError(w http.ResponseWriter, req *http.Request, responseType service.ResponseType, err error) {
	utils.WriteErrorWithStatus(w, req, err, statusForResponseType(responseType))
}

func statusForResponseType(responseType service.ResponseType) int {
	switch responseType {
	case service.InvalidData:
		return http.StatusBadRequest
	case service.Forbidden, service.NotEligible:
		return http.StatusForbidden
	case service.NotFound:
		return http.StatusNotFound
	case service.InvalidStatus, service.Expired:
		return http.StatusConflict
	case service.PaymentFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
