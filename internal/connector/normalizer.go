package connector

import (
	"strconv"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// SubError is one entry of a processor's error list.
type SubError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorBody is the parsed shape of a processor error payload that adapters
// hand to NormalizeError. Adapters parse their own wire schema into this;
// they must not reorder or filter the sub-error list first.
type ErrorBody struct {
	Errors  []SubError `json:"errors"`
	Message *string    `json:"message"`
	Status  *int       `json:"status"`
}

// NormalizeError turns a parsed processor error payload into the canonical
// error shape. The first sub-error wins verbatim; otherwise the top-level
// message is used (or the default placeholder) and the code falls back to
// the stringified top-level status. The transport's HTTP status code is
// preserved regardless.
func NormalizeError(statusCode int, body ErrorBody) *types.ErrorResponse {
	var status int
	if body.Status != nil {
		status = *body.Status
	}
	code := strconv.Itoa(status)

	message := types.DefaultErrorMessage
	if body.Message != nil && *body.Message != "" {
		message = *body.Message
	}

	if len(body.Errors) > 0 {
		code = body.Errors[0].Code
		message = body.Errors[0].Message
	}

	return &types.ErrorResponse{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}
