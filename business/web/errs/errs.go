// Package errs provides the errors the node api answers with when a request
// fails for a reason the client can act on.
package errs

import "errors"

// Response is the body sent back to the client when a request fails.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is an error whose message is safe to show the client, paired with
// the status code to answer with.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted pairs the error with a status code. Handlers use it for expected
// failures such as a bad request body or a peer that can't be reached.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

// Error implements the error interface using the message of the cause.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap returns the cause so callers can match it with errors.Is.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports whether a Trusted error is in the chain.
func IsTrusted(err error) bool {
	return GetTrusted(err) != nil
}

// GetTrusted returns the Trusted error in the chain or nil if there is none.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
