package service

import (
	"errors"
	"fmt"

	"ulascansenturk/watchface-weather/internal/appmessage"
	"ulascansenturk/watchface-weather/internal/location"
	"ulascansenturk/watchface-weather/internal/providers"
)

type FailureKind string

const (
	LocationFailure   FailureKind = "location_failure"
	TransportFailure  FailureKind = "transport_failure"
	MalformedResponse FailureKind = "malformed_response"
	DispatchFailure   FailureKind = "dispatch_failure"
)

// RunError ends a pipeline run. Nothing has been dispatched when it is
// returned.
type RunError struct {
	Kind FailureKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func classifyWeatherError(err error) FailureKind {
	if errors.Is(err, providers.ErrMalformedResponse) {
		return MalformedResponse
	}
	return TransportFailure
}

// KindOf reports the failure kind of err, or "" when err is not a run failure.
func KindOf(err error) FailureKind {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Kind
	}

	var locErr *location.Error
	switch {
	case errors.As(err, &locErr):
		return LocationFailure
	case errors.Is(err, providers.ErrMalformedResponse):
		return MalformedResponse
	case errors.Is(err, providers.ErrTransport):
		return TransportFailure
	case errors.Is(err, appmessage.ErrDispatch):
		return DispatchFailure
	}
	return ""
}
