package api

import (
	"context"
	"errors"
	"net"
	"net/url"

	"weather-screen/internal/domain/model/external"
	"weather-screen/pkg/http"
)

// ErrorKind classifies a failed weather API call
type ErrorKind string

const (
	KindNetwork  ErrorKind = "NETWORK"
	KindProtocol ErrorKind = "PROTOCOL"
	KindUnknown  ErrorKind = "UNKNOWN"
)

// GatewayError wraps a failed call. Message holds the provider's own description when it sent one.
type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// classify turns a client error into a GatewayError
func classify(err error, status int, errResp any) *GatewayError {
	gatewayErr := &GatewayError{Kind: KindUnknown, Status: status, Err: err}

	var statusErr *http.StatusError
	var netErr net.Error
	var urlErr *url.Error

	switch {
	case errors.As(err, &statusErr):
		gatewayErr.Kind = KindProtocol
		if apiErr, ok := errResp.(*external.APIErrorResponse); ok && apiErr != nil {
			gatewayErr.Message = apiErr.Error.Message
		}
	case errors.Is(err, http.ErrDecode):
		gatewayErr.Kind = KindProtocol
	case errors.Is(err, context.Canceled):
		gatewayErr.Kind = KindUnknown
	case errors.As(err, &netErr), errors.As(err, &urlErr), errors.Is(err, context.DeadlineExceeded):
		gatewayErr.Kind = KindNetwork
	}

	return gatewayErr
}
