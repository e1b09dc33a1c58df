package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/localswap/internal/common"
	"google.golang.org/grpc/codes"
)

type errorClass struct {
	target  error
	http    int
	code    codes.Code
	message string
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{common.ErrorValidation, http.StatusBadRequest, codes.InvalidArgument, ""},
	{common.ErrUnsupportedImage, http.StatusBadRequest, codes.InvalidArgument, "Formato immagine non supportato"},
	{common.ErrorNotFound, http.StatusNotFound, codes.NotFound, "not found"},
	{common.ErrorForbidden, http.StatusForbidden, codes.PermissionDenied, "forbidden"},
	{common.ErrSelfConversation, http.StatusConflict, codes.FailedPrecondition, "Non puoi contattare te stesso"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, codes.Unauthenticated, "unauthorized"},
	{common.ErrInvalidToken, http.StatusUnauthorized, codes.Unauthenticated, "invalid token"},
	{common.ErrTokenExpired, http.StatusUnauthorized, codes.Unauthenticated, "token expired"},
	{context.Canceled, 499, codes.Canceled, "canceled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, codes.DeadlineExceeded, "deadline exceeded"},
}

// Describe classifies err for a response. Validation errors keep their
// user-facing message and field; unknown errors become internal errors whose
// details stay in the logs.
func Describe(err error) (httpStatus int, code codes.Code, message, field string) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, codes.InvalidArgument, ve.Message, ve.Field
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			msg := c.message
			if msg == "" {
				msg = err.Error()
			}
			return c.http, c.code, msg, ""
		}
	}
	return http.StatusInternalServerError, codes.Internal, "internal error", ""
}

// IsInternal reports whether err maps to an internal error.
func IsInternal(err error) bool {
	_, code, _, _ := Describe(err)
	return code == codes.Internal
}
