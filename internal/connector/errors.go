package connector

import (
	"errors"
	"fmt"
)

// ErrorKind classifies what part of a connector call failed. The kind drives
// the caller-facing outcome; the wrapped error carries the diagnostic trail.
type ErrorKind string

const (
	KindFailedToObtainAuthType        ErrorKind = "failed_to_obtain_auth_type"
	KindMissingRequiredField          ErrorKind = "missing_required_field"
	KindRequestEncodingFailed         ErrorKind = "request_encoding_failed"
	KindResponseDeserializationFailed ErrorKind = "response_deserialization_failed"
	KindResponseHandlingFailed        ErrorKind = "response_handling_failed"
	KindWebhooksNotImplemented        ErrorKind = "webhooks_not_implemented"
	KindInternal                      ErrorKind = "internal"
)

type ConnectorError struct {
	Kind  ErrorKind
	Field string // set for missing_required_field
	Err   error
}

func (e *ConnectorError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConnectorError) Unwrap() error {
	return e.Err
}

func NewConnectorError(kind ErrorKind, err error) *ConnectorError {
	return &ConnectorError{Kind: kind, Err: err}
}

func NewMissingRequiredField(field string) *ConnectorError {
	return &ConnectorError{Kind: KindMissingRequiredField, Field: field}
}

func NewFailedToObtainAuthType() *ConnectorError {
	return &ConnectorError{Kind: KindFailedToObtainAuthType}
}

func NewWebhooksNotImplemented() *ConnectorError {
	return &ConnectorError{Kind: KindWebhooksNotImplemented}
}

func IsConnectorError(err error) (*ConnectorError, bool) {
	var connErr *ConnectorError
	ok := errors.As(err, &connErr)
	return connErr, ok
}
