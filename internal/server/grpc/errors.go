package grpc

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/tokenkeeper/internal/api"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
)

// toStatus maps domain errors to gRPC status errors carrying an ErrorInfo
// reason. Messages are the sentinel texts; wrapped parser, storage and
// upstream details stay in the server log.
func toStatus(err error) error {
	kind := api.Classify(err)

	code, msg := codes.Internal, "internal error"
	switch kind.Err {
	case common.ErrValidation:
		code, msg = codes.InvalidArgument, err.Error()
	case common.ErrInvalidCredentials,
		common.ErrInvalidSignature,
		common.ErrKindMismatch,
		common.ErrInvalidToken,
		common.ErrTokenExpired,
		common.ErrRevoked:
		code, msg = codes.Unauthenticated, kind.Err.Error()
	case common.ErrNotFoundOrAlreadyRevoked, common.ErrNotFound:
		code, msg = codes.NotFound, kind.Err.Error()
	case common.ErrDuplicateToken:
		code, msg = codes.AlreadyExists, kind.Err.Error()
	case common.ErrDenylistDisabled:
		code, msg = codes.FailedPrecondition, kind.Err.Error()
	case common.ErrStorage, common.ErrUserService:
		code, msg = codes.Unavailable, kind.Err.Error()
	}

	return statusWithReason(code, msg, kind.Reason)
}

func statusWithReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: api.ErrorDomain})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}
