package enrichment

import (
	"fmt"
)

// Reason classifies why a gene lookup failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTimeout
	ReasonTransport
	ReasonParse
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonTransport:
		return "transport"
	case ReasonParse:
		return "parse"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// LookupError is the typed failure of a single gene lookup.
type LookupError struct {
	Gene       string
	Reason     Reason
	StatusCode int // set for non-2xx responses
	Err        error
}

func (e *LookupError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("lookup %s: %s: HTTP %d", e.Gene, e.Reason, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("lookup %s: %s: %v", e.Gene, e.Reason, e.Err)
	default:
		return fmt.Sprintf("lookup %s: %s", e.Gene, e.Reason)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Result carries either the diseases associated with a gene or the reason
// the lookup failed. An empty Diseases with a nil Err means the service
// knows the gene but reports no disease for it.
type Result struct {
	Gene     string
	Diseases []string
	Err      *LookupError
	Cached   bool
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Reason returns the failure reason, ReasonNone on success.
func (r Result) Reason() Reason {
	if r.Err == nil {
		return ReasonNone
	}
	return r.Err.Reason
}

func failure(gene string, reason Reason, status int, err error) Result {
	return Result{Gene: gene, Err: &LookupError{Gene: gene, Reason: reason, StatusCode: status, Err: err}}
}
