package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/interceptors"
	"github.com/givehub/escrow.api/utils"
)

// HandleCancelCampaign cancels a campaign, refunds donors from escrow and
// opens a recovery case for any shortfall
func HandleCancelCampaign(w http.ResponseWriter, req *http.Request) {
	campaignID := mux.Vars(req)["campaign_id"]

	result, responseType, err := refundService.CancelCampaign(req.Context(), campaignID, interceptors.CallerID(req))
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error cancelling campaign: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	status := http.StatusOK
	if result.WasAlreadyCancelled {
		// replaying a finished cancellation is answered with the stored outcome
		log.InfoR(req, "Campaign already cancelled, returning stored outcome", log.Data{"campaign_id": campaignID})
	}

	utils.WriteJSONWithStatus(w, req, result, status)
	log.InfoR(req, "Successful POST request to cancel campaign", log.Data{
		"campaign_id":      campaignID,
		"escrow_available": result.EscrowAvailable,
		"total_disbursed":  result.TotalDisbursed,
		"refund_count":     len(result.Refunds),
	})
}
