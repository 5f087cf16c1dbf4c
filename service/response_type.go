package service

// ResponseType enumerates the outcomes a service operation can produce
type ResponseType int

const (
	// InvalidData response
	InvalidData ResponseType = iota

	// Error response
	Error

	// Forbidden response
	Forbidden

	// NotFound response
	NotFound

	// Success response
	Success

	// InvalidStatus response - the resource is not in a state that permits
	// the attempted transition
	InvalidStatus

	// Expired response - the voting window has closed
	Expired

	// NotEligible response - the caller has no completed donation on the
	// campaign
	NotEligible

	// PaymentFailed response - the external gateway declined or errored;
	// the resource remains in its last valid state and the operation is
	// retryable
	PaymentFailed
)

var vals = [...]string{
	"invalid-data",
	"error",
	"forbidden",
	"not-found",
	"success",
	"invalid-status",
	"expired",
	"not-eligible",
	"payment-failed",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	return vals[a]
}
