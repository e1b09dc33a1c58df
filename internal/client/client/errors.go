package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// RemoteError carries the server's message for a rejected call. It
// unwraps to the matching common sentinel.
type RemoteError struct {
	Kind    error
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return &RemoteError{Kind: common.ErrorValidation, Message: st.Message()}
	case codes.NotFound:
		return &RemoteError{Kind: common.ErrorNotFound, Message: st.Message()}
	case codes.PermissionDenied:
		return &RemoteError{Kind: common.ErrorForbidden, Message: st.Message()}
	case codes.FailedPrecondition:
		return &RemoteError{Kind: common.ErrSelfConversation, Message: st.Message()}
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
