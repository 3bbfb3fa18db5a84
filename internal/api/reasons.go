package api

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// ErrorDomain is the ErrorInfo domain attached to failed calls.
const ErrorDomain = "tokenkeeper"

// Failure reasons. They are carried as errdetails.ErrorInfo on gRPC
// statuses and as the envelope "reason" field over HTTP, so callers can
// branch without parsing messages.
const (
	ReasonValidation             = "VALIDATION_FAILED"
	ReasonInvalidCredentials     = "INVALID_CREDENTIALS"
	ReasonInvalidSignature       = "INVALID_SIGNATURE"
	ReasonKindMismatch           = "TOKEN_KIND_MISMATCH"
	ReasonInvalidToken           = "INVALID_TOKEN"
	ReasonMissingToken           = "MISSING_TOKEN"
	ReasonTokenExpired           = "TOKEN_EXPIRED"
	ReasonTokenRevoked           = "TOKEN_REVOKED"
	ReasonNotFoundOrRevoked      = "TOKEN_NOT_FOUND_OR_ALREADY_REVOKED"
	ReasonNotFound               = "NOT_FOUND"
	ReasonDuplicateToken         = "DUPLICATE_TOKEN"
	ReasonDenylistDisabled       = "DENYLIST_DISABLED"
	ReasonStorageUnavailable     = "STORAGE_UNAVAILABLE"
	ReasonUserServiceUnavailable = "USER_SERVICE_UNAVAILABLE"
	ReasonInternal               = "INTERNAL"
)

// ErrorKind pairs a domain sentinel with its stable reason. The order of
// ErrorKinds matters: specific token errors precede ErrInvalidToken.
type ErrorKind struct {
	Err    error
	Reason string
}

var ErrorKinds = []ErrorKind{
	{common.ErrValidation, ReasonValidation},
	{common.ErrInvalidCredentials, ReasonInvalidCredentials},
	{common.ErrInvalidSignature, ReasonInvalidSignature},
	{common.ErrKindMismatch, ReasonKindMismatch},
	{common.ErrInvalidToken, ReasonInvalidToken},
	{common.ErrTokenExpired, ReasonTokenExpired},
	{common.ErrRevoked, ReasonTokenRevoked},
	{common.ErrNotFoundOrAlreadyRevoked, ReasonNotFoundOrRevoked},
	{common.ErrNotFound, ReasonNotFound},
	{common.ErrDuplicateToken, ReasonDuplicateToken},
	{common.ErrDenylistDisabled, ReasonDenylistDisabled},
	{common.ErrStorage, ReasonStorageUnavailable},
	{common.ErrUserService, ReasonUserServiceUnavailable},
}

// Classify returns the kind of err. Unknown errors have a nil Err and
// ReasonInternal.
func Classify(err error) ErrorKind {
	for _, k := range ErrorKinds {
		if errors.Is(err, k.Err) {
			return k
		}
	}
	return ErrorKind{Reason: ReasonInternal}
}

// StatusReason extracts the ErrorInfo reason from a gRPC error, or "" when
// there is none.
func StatusReason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
