package models

// ErrorResource is the machine-readable error body returned from every failed
// mutation, so the calling UI can branch on Code without string-matching.
type ErrorResource struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RedirectParams are the parameters appended when redirecting a user back to
// the web frontend after a gateway checkout
type RedirectParams struct {
	Ref    string
	Status string
}
