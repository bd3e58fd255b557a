// Package errs provides the error kinds shared by every layer of parcelhub.
//
// Four kinds are surfaced to callers:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     TransitionIsNotAllowedError
//   - Not found: ObjectNotFoundError
//   - Conflict: ConflictError, AmountMismatchError
//   - Upstream: UpstreamError (store or broker call failed)
//
// Each typed error has a sentinel (e.g. ErrObjectNotFound) returned by Unwrap,
// so callers classify with errors.Is or the Is* helpers. Messages are precise
// enough for an operator to act on ("reconciliation short by PKR 10.00").
package errs
