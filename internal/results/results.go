// Package results defines the operation-result shape returned by service
// operations: a domain success or a domain failure payload. Infrastructure
// errors travel separately as the second return value, so handlers can ack
// domain failures (publishing a failure event) and retry infra errors.
package results

// OperationResult carries exactly one of a success or failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// Success wraps a success payload.
func Success[S any, F any](s *S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: s}
}

// Failure wraps a domain-failure payload.
func Failure[S any, F any](f *F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: f}
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether a domain-failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
