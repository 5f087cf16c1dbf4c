package service

import "fmt"

// Machine-readable error codes returned to callers alongside the
// human-readable message.
const (
	CodeEscrowNotFound         = "ESCROW_NOT_FOUND"
	CodeCampaignNotFound       = "CAMPAIGN_NOT_FOUND"
	CodeRecoveryCaseNotFound   = "RECOVERY_CASE_NOT_FOUND"
	CodeInvalidStatus          = "INVALID_STATUS"
	CodeVotingNotInProgress    = "VOTING_NOT_IN_PROGRESS"
	CodeVotingPeriodExpired    = "VOTING_PERIOD_EXPIRED"
	CodeAlreadyReleased        = "ALREADY_RELEASED"
	CodeProofAlreadyExists     = "PROOF_ALREADY_EXISTS"
	CodeNotEligibleToVote      = "NOT_ELIGIBLE_TO_VOTE"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInvalidVoteValue       = "INVALID_VOTE_VALUE"
	CodeMissingProofImages     = "MISSING_PROOF_IMAGES"
	CodeMissingRejectionReason = "MISSING_REJECTION_REASON"
	CodeInvalidExtensionDays   = "INVALID_EXTENSION_DAYS"
	CodeInsufficientFunds      = "INSUFFICIENT_FUNDS"
	CodeActiveEscrowExists     = "ACTIVE_ESCROW_EXISTS"
	CodePaymentFailed          = "PAYMENT_FAILED"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
)

// CodedError carries a machine-readable code with the error message so
// handlers can build the error body without string-matching.
type CodedError struct {
	Code    string
	Message string
}

// Error satisfies the error interface
func (e *CodedError) Error() string {
	return e.Message
}

// Coded constructs a CodedError
func Coded(code, format string, args ...interface{}) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the machine-readable code from an error, defaulting to
// INTERNAL_ERROR for plain errors from lower layers.
func ErrorCode(err error) string {
	if coded, ok := err.(*CodedError); ok {
		return coded.Code
	}
	return CodeInternalError
}
