package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/interceptors"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/service"
	"github.com/givehub/escrow.api/utils"
)

// HandleCreateEscrow opens a withdrawal request against a campaign and starts
// its voting window
func HandleCreateEscrow(w http.ResponseWriter, req *http.Request) {
	var createRequest models.CreateEscrowRequest
	if !decodeBody(w, req, &createRequest) {
		return
	}

	escrow, responseType, err := escrowService.CreateEscrow(req.Context(), interceptors.CallerID(req), createRequest, models.EscrowSourceCreator)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating withdrawal request: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusCreated)
	log.InfoR(req, "Successful POST request for new withdrawal request", log.Data{"escrow_id": escrow.ID, "campaign_id": escrow.CampaignID})
}

// HandleGetEscrow retrieves a single withdrawal request
func HandleGetEscrow(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	escrow, responseType, err := escrowService.GetEscrow(req.Context(), id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting withdrawal request: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusOK)
	log.InfoR(req, "Successful GET request for withdrawal request", log.Data{"escrow_id": id})
}

// HandleGetEscrowsByStatus lists withdrawal requests in a given status for
// the admin review queue
func HandleGetEscrowsByStatus(w http.ResponseWriter, req *http.Request) {
	status := req.URL.Query().Get("status")
	if status == "" {
		status = models.EscrowStatusVotingCompleted
	}

	escrows, responseType, err := escrowService.GetEscrowsByStatus(req.Context(), status)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing withdrawal requests: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrows, http.StatusOK)
	log.InfoR(req, "Successful GET request for withdrawal request queue", log.Data{"status": status, "count": len(escrows)})
}

// HandleSubmitVote records or replaces the caller's vote on a withdrawal
// request
func HandleSubmitVote(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	var voteRequest models.SubmitVoteRequest
	if !decodeBody(w, req, &voteRequest) {
		return
	}

	vote, responseType, err := escrowService.SubmitVote(req.Context(), id, interceptors.CallerID(req), voteRequest.Value)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error submitting vote: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, vote, http.StatusOK)
	log.InfoR(req, "Successful POST request for vote", log.Data{"escrow_id": id, "value": vote.Value})
}

// HandleGetTally reports the current weighted tally on a withdrawal request
func HandleGetTally(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	tally, responseType, err := escrowService.Tally(req.Context(), id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error computing tally: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, tally, http.StatusOK)
}

// HandleExtendVoting lengthens the voting window of an in-progress vote
func HandleExtendVoting(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	var extendRequest models.ExtendVoteRequest
	if !decodeBody(w, req, &extendRequest) {
		return
	}

	escrow, responseType, err := escrowService.ExtendVoting(req.Context(), id, interceptors.CallerID(req), extendRequest.ExtensionDays)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error extending voting window: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusOK)
	log.InfoR(req, "Successful POST request to extend voting window", log.Data{"escrow_id": id, "voting_end_at": escrow.VotingEndAt})
}

// HandleApproveEscrow records an admin approval of a completed vote
func HandleApproveEscrow(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	escrow, responseType, err := escrowService.ApproveEscrow(req.Context(), id, interceptors.CallerID(req))
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error approving withdrawal request: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusOK)
	log.InfoR(req, "Successful POST request to approve withdrawal request", log.Data{"escrow_id": id})
}

// HandleRejectEscrow records an admin rejection of a completed vote
func HandleRejectEscrow(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	var rejectRequest models.RejectEscrowRequest
	if !decodeBody(w, req, &rejectRequest) {
		return
	}

	escrow, responseType, err := escrowService.RejectEscrow(req.Context(), id, interceptors.CallerID(req), rejectRequest.RejectionReason)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error rejecting withdrawal request: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusOK)
	log.InfoR(req, "Successful POST request to reject withdrawal request", log.Data{"escrow_id": id})
}

// HandleReleaseEscrow pays an approved withdrawal out to the campaign owner
// against submitted disbursement proof
func HandleReleaseEscrow(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["escrow_id"]

	var releaseRequest models.ReleaseEscrowRequest
	if !decodeBody(w, req, &releaseRequest) {
		return
	}

	escrow, responseType, err := escrowService.ReleaseEscrow(req.Context(), id, interceptors.CallerID(req), releaseRequest.DisbursementProofImages, releaseRequest.DisbursementNote)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error releasing withdrawal request: [%v]", err))
		writeServiceError(w, req, responseType, err)
		return
	}

	utils.WriteJSONWithStatus(w, req, escrow, http.StatusOK)
	log.InfoR(req, "Successful POST request to release withdrawal request", log.Data{"escrow_id": id, "settlement_ref": escrow.SettlementRef})
}

// decodeBody decodes and validates an incoming request body, answering the
// request itself when the body is missing or invalid
func decodeBody(w http.ResponseWriter, req *http.Request, target interface{}) bool {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteErrorWithStatus(w, req, service.Coded(service.CodeValidationError, "request body empty"), http.StatusBadRequest)
		return false
	}

	err := json.NewDecoder(req.Body).Decode(target)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteErrorWithStatus(w, req, service.Coded(service.CodeValidationError, "request body invalid"), http.StatusBadRequest)
		return false
	}

	validate := validator.New()
	if err = validate.Struct(target); err != nil {
		log.ErrorR(req, fmt.Errorf("request body failed validation: [%v]", err))
		utils.WriteErrorWithStatus(w, req, service.Coded(service.CodeValidationError, "request body failed validation: %v", err), http.StatusBadRequest)
		return false
	}

	return true
}
